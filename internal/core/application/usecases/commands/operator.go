package commands

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// validateOperator checks the identity recorded for operator overrides.
func validateOperator(operator string) (string, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return "", errs.NewValueIsRequiredError("operator")
	}
	return operator, nil
}
