// Package docs publishes the OpenAPI document to the swagger UI served by
// echo-swagger.
package docs

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

type document struct {
	body string
}

func (d document) ReadDoc() string {
	return d.body
}

var once sync.Once

// Register makes swagger the document returned for doc.json. Only the first
// call has an effect.
func Register(swagger *openapi3.T) error {
	body, err := swagger.MarshalJSON()
	if err != nil {
		return err
	}
	once.Do(func() {
		swag.Register(swag.Name, document{body: string(body)})
	})
	return nil
}
