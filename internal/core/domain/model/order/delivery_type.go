package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// DeliveryType is the delivery class of an order. Express orders are served
// before Standard orders and have tighter estimates.
type DeliveryType int

const (
	// UnknownDeliveryType catches uninitialized values.
	UnknownDeliveryType DeliveryType = iota
	Standard
	Express
)

// ParseDeliveryType accepts "Standard" or "Express" in any letter case.
func ParseDeliveryType(s string) (DeliveryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return Standard, nil
	case "express":
		return Express, nil
	default:
		return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
			"delivery type is invalid",
			fmt.Errorf("%q is not a valid delivery type", s),
		)
	}
}

// Validate checks that t is Standard or Express.
func (t DeliveryType) Validate() error {
	if t != Standard && t != Express {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery type is invalid",
			fmt.Errorf("%d is not a valid delivery type", t),
		)
	}
	return nil
}

func (t DeliveryType) String() string {
	switch t {
	case Standard:
		return "Standard"
	case Express:
		return "Express"
	default:
		return "Unknown"
	}
}
