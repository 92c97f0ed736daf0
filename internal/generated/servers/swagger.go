package servers

import (
	"fmt"

	"fulfillment/api"

	"github.com/getkin/kin-openapi/openapi3"
)

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swagger, err := openapi3.NewLoader().LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
