// Package openapi describes the registration endpoints as an OpenAPI 3
// document built with kin-openapi.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
)

// ExtensionKey carries presentation hints (label, widget, credential) on each
// body property.
const ExtensionKey = "x-regform"

// Info describes the published document.
type Info struct {
	Title       string
	Version     string
	Description string
	// FormPath is where the form is served and posted. Defaults to "/".
	FormPath string
	// ThanksPath is the redirect target after a valid submission. Defaults to
	// "/thanks".
	ThanksPath string
}

// Document builds and validates an OpenAPI document for the form endpoints:
// GET renders the page, POST accepts an urlencoded body mirroring schema.
func Document(ctx context.Context, schema model.Schema, info Info) (*openapi3.T, error) {
	if len(schema.Fields) == 0 {
		return nil, errors.New("openapi: schema has no fields")
	}
	info = withDefaults(info)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	doc.Paths.Set(info.FormPath, &openapi3.PathItem{
		Get:  formPage(),
		Post: submitOperation(schema, info.ThanksPath),
	})
	doc.Paths.Set(info.ThanksPath, &openapi3.PathItem{
		Get: thanksPage(),
	})

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// BodySchema returns the request body schema for a form submission.
func BodySchema(schema model.Schema) *openapi3.Schema {
	body := openapi3.NewObjectSchema()
	var required []string

	for _, field := range schema.Fields {
		body.WithProperty(field.Name, propertySchema(field))
		if field.Required {
			required = append(required, field.Name)
		}
		if confirm := field.ConfirmName(); confirm != "" {
			prop := openapi3.NewStringSchema().WithFormat("password")
			prop.Description = "Must repeat " + field.Name
			body.WithProperty(confirm, prop)
		}
	}
	body.Required = required
	return body
}

func propertySchema(field model.Field) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	if field.Kind == model.KindSecret {
		prop = prop.WithFormat("password")
	}
	if field.Label != "" && field.Label != field.Name {
		prop.Title = field.Label
	}

	hints := map[string]any{"label": field.Label}
	if field.Widget != "" {
		hints["widget"] = field.Widget
	}
	if field.Credential {
		hints["credential"] = true
	}
	prop.Extensions = map[string]any{ExtensionKey: hints}
	return prop
}

func formPage() *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "renderForm"
	op.Summary = "Render the registration form"
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, htmlResponse("Registration form page")),
	)
	return op
}

func submitOperation(schema model.Schema, thanksPath string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "submitRegistration"
	op.Summary = "Submit the registration form"
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithFormDataSchema(BodySchema(schema)),
	}

	redirect := openapi3.NewResponse().
		WithDescription("Registration accepted; redirects to " + thanksPath)
	redirect.Headers = openapi3.Headers{
		"Location": &openapi3.HeaderRef{
			Value: &openapi3.Header{
				Parameter: openapi3.Parameter{
					Description: "Thanks page URL",
					Schema:      openapi3.NewStringSchema().NewRef(),
				},
			},
		},
	}

	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, htmlResponse("Form redisplayed with validation errors")),
		openapi3.WithStatus(303, &openapi3.ResponseRef{Value: redirect}),
		openapi3.WithStatus(500, htmlResponse("Answers could not be recorded; form redisplayed")),
	)
	return op
}

func thanksPage() *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "renderThanks"
	op.Summary = "Render the thanks page"
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, htmlResponse("Thanks page")),
	)
	return op
}

func htmlResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"})),
	}
}

func withDefaults(info Info) Info {
	if strings.TrimSpace(info.Title) == "" {
		info.Title = "Registration"
	}
	if strings.TrimSpace(info.Version) == "" {
		info.Version = "1.0.0"
	}
	if info.FormPath == "" {
		info.FormPath = "/"
	}
	if info.ThanksPath == "" {
		info.ThanksPath = "/thanks"
	}
	return info
}
