package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Stage is the part of the lifecycle an estimate is made for.
type Stage int

const (
	// StageInitial covers orders waiting in line.
	StageInitial Stage = iota
	// StageInProgress covers orders an operator has started.
	StageInProgress
)

// StageOf maps a status to its estimation stage. Delayed orders are estimated
// as waiting orders.
func StageOf(status order.Status) Stage {
	if status == order.InProgress {
		return StageInProgress
	}
	return StageInitial
}

func (s Stage) String() string {
	if s == StageInProgress {
		return "in_progress"
	}
	return "initial"
}

// DeliveryTimeEstimator computes delivery estimates as fixed offsets from now.
// The offsets do not depend on how many orders are ahead in line.
type DeliveryTimeEstimator struct {
	windows map[order.DeliveryType]map[Stage]time.Duration
}

func NewDeliveryTimeEstimator() DeliveryTimeEstimator {
	return DeliveryTimeEstimator{
		windows: map[order.DeliveryType]map[Stage]time.Duration{
			order.Express: {
				StageInitial:    60 * time.Minute,
				StageInProgress: 15 * time.Minute,
			},
			order.Standard: {
				StageInitial:    72 * time.Hour,
				StageInProgress: 24 * time.Hour,
			},
		},
	}
}

// Estimate returns now plus the window for the class and stage. Unknown
// classes get the Standard window.
func (e DeliveryTimeEstimator) Estimate(deliveryType order.DeliveryType, stage Stage, now time.Time) time.Time {
	windows, ok := e.windows[deliveryType]
	if !ok {
		windows = e.windows[order.Standard]
	}
	return now.Add(windows[stage])
}
