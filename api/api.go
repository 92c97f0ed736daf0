// Package api holds the OpenAPI description of the HTTP surface.
package api

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=oapi-codegen.types.yml openapi.yml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=oapi-codegen.server.yml openapi.yml

import _ "embed"

// Spec is api/openapi.yml.
//
//go:embed openapi.yml
var Spec []byte
