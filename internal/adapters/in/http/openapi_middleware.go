package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// OpenAPIValidator rejects requests that do not match the OpenAPI document
// with 400. Paths are matched after stripping baseURL; requests the
// document does not describe pass through untouched.
func OpenAPIValidator(swagger *openapi3.T, baseURL string) (echo.MiddlewareFunc, error) {
	swagger.Servers = nil
	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			request := ctx.Request()
			path, ok := strings.CutPrefix(request.URL.Path, baseURL)
			if !ok {
				return next(ctx)
			}

			routed := request.Clone(request.Context())
			routed.URL.Path = path
			route, pathParams, err := router.FindRoute(routed)
			if err != nil {
				return next(ctx)
			}

			err = openapi3filter.ValidateRequest(request.Context(), &openapi3filter.RequestValidationInput{
				Request:    routed,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			// ValidateRequest replaces the body it consumed
			request.Body = routed.Body
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
			}

			return next(ctx)
		}
	}, nil
}
