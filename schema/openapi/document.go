package openapi

import (
	"sort"
	"strings"

	formstate "github.com/goliatone/go-formstate"
	"github.com/getkin/kin-openapi/openapi3"
)

// Document builds an OpenAPI document with one submit operation per form.
// Each request body references the form schema published under components.
func Document(forms []*formstate.FormState, opts ...Option) *openapi3.T {
	cfg := defaultDocumentConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc := &openapi3.T{
		OpenAPI: cfg.openAPIVersion,
		Info: &openapi3.Info{
			Title:       cfg.info.Title,
			Version:     cfg.info.Version,
			Description: cfg.info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: Components(forms...),
		},
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := openapi3.NewSchemaRef("#/components/schemas/"+name, doc.Components.Schemas[name].Value)
		body := openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchemaRef(ref, []string{cfg.contentType}))

		operation := &openapi3.Operation{
			OperationID: "submit:" + name,
			Summary:     "Submit " + name,
			RequestBody: &openapi3.RequestBodyRef{Value: body},
			Responses:   buildResponses(cfg.responses),
		}
		path := strings.TrimRight(cfg.pathPrefix, "/") + "/" + name
		doc.Paths.Set(path, &openapi3.PathItem{Post: operation})
	}
	return doc
}

func buildResponses(responses map[string]string) *openapi3.Responses {
	out := openapi3.NewResponsesWithCapacity(len(responses))
	statuses := make([]string, 0, len(responses))
	for status := range responses {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		description := responses[status]
		out.Set(status, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(description),
		})
	}
	return out
}
