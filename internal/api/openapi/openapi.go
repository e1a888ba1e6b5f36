// Package openapi embeds the API contract, validates requests against it and serves it to Swagger UI.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-gonic/gin"
	ginmiddleware "github.com/oapi-codegen/gin-middleware"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var document []byte

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("openapi: parsing document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi: invalid document: %w", err)
	}
	return doc, nil
}

// Validator rejects requests whose parameters or body do not match doc.
// Authentication is left to the auth middleware.
func Validator(doc *openapi3.T) gin.HandlerFunc {
	// Route matching must not depend on the host the server is reached through.
	doc.Servers = nil

	return ginmiddleware.OapiRequestValidatorWithOptions(doc, &ginmiddleware.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		ErrorHandler: func(c *gin.Context, message string, statusCode int) {
			c.AbortWithStatusJSON(statusCode, gin.H{"error": "Invalid request", "details": gin.H{"request": message}})
		},
		SilenceServersWarning: true,
	})
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// RegisterSwagger publishes doc to the swag registry read by gin-swagger.
func RegisterSwagger(doc *openapi3.T) {
	registerOnce.Do(func() {
		data, err := doc.MarshalJSON()
		if err != nil {
			log.Errorf("openapi: encoding document for Swagger UI: %v", err)
			return
		}
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
}
