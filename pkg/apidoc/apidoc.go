// Package apidoc describes the bridge HTTP API as an OpenAPI 3 document.
package apidoc

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Version is reported in the document info block.
const Version = "1.0.0"

const (
	schemaError      = "ErrorRecord"
	schemaForm       = "FormioSchema"
	schemaComponent  = "FormioComponent"
	schemaSubmission = "SubmissionResult"
)

// Document builds the OpenAPI description for the bridge mounted at
// routePath. The form id is appended as a path parameter.
func Document(routePath string) *openapi3.T {
	routePath = "/" + strings.Trim(strings.TrimSpace(routePath), "/")

	schemas := openapi3.Schemas{
		schemaError:      openapi3.NewSchemaRef("", errorRecordSchema()),
		schemaComponent:  openapi3.NewSchemaRef("", componentSchema()),
		schemaSubmission: openapi3.NewSchemaRef("", submissionSchema()),
	}
	schemas[schemaForm] = openapi3.NewSchemaRef("", formSchema(schemas))

	components := openapi3.NewComponents()
	components.Schemas = schemas
	jsonResponse := func(description, name string) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription(description).
				WithJSONSchemaRef(ref(schemas, name)),
		}
	}

	item := &openapi3.PathItem{
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewPathParameter("id").
				WithDescription("Gravity Forms form id").
				WithSchema(openapi3.NewIntegerSchema().WithMin(1))},
		},
		Get: &openapi3.Operation{
			OperationID: "getFormioForm",
			Summary:     "Translate a Gravity Forms form into a form.io schema",
			Tags:        []string{"forms"},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, jsonResponse("form.io schema", schemaForm)),
				openapi3.WithStatus(400, jsonResponse("No id given", schemaError)),
				openapi3.WithStatus(404, jsonResponse("Form not found", schemaError)),
				openapi3.WithStatus(503, jsonResponse("Gravity Forms is not installed", schemaError)),
				openapi3.WithStatus(500, jsonResponse("Internal Server Error", schemaError)),
			),
		},
		Post: &openapi3.Operation{
			OperationID: "submitFormioForm",
			Summary:     "Submit a form.io payload to Gravity Forms",
			Tags:        []string{"forms"},
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("form.io submission data keyed by component key").
					WithRequired(false).
					WithJSONSchema(openapi3.NewObjectSchema().WithAnyAdditionalProperties()),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, jsonResponse("Gravity Forms submission result", schemaSubmission)),
				openapi3.WithStatus(400, jsonResponse("Missing id or malformed body", schemaError)),
				openapi3.WithStatus(404, jsonResponse("Form not found", schemaError)),
				openapi3.WithStatus(503, jsonResponse("Gravity Forms is not installed", schemaError)),
				openapi3.WithStatus(500, jsonResponse("Internal Server Error", schemaError)),
			),
		},
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Gravity Forms form.io bridge",
			Description: "Serves Gravity Forms forms as form.io schemas and accepts form.io submissions.",
			Version:     Version,
		},
		Paths:      openapi3.NewPaths(openapi3.WithPath(routePath+"/{id}", item)),
		Components: &components,
	}
}

// ref points at a component schema. The resolved value is kept so the
// in-memory document validates without a loader pass.
func ref(schemas openapi3.Schemas, name string) *openapi3.SchemaRef {
	var value *openapi3.Schema
	if target := schemas[name]; target != nil {
		value = target.Value
	}
	return openapi3.NewSchemaRef("#/components/schemas/"+name, value)
}

func errorRecordSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("data", openapi3.NewIntegerSchema())
	schema.Required = []string{"message"}
	return schema
}

func valueSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewStringSchema())
	schema.Required = []string{"label", "value"}
	return schema
}

func componentSchema() *openapi3.Schema {
	values := openapi3.NewArraySchema().WithItems(valueSchema())
	schema := openapi3.NewObjectSchema().
		WithProperty("input", openapi3.NewBoolSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema()).
		WithProperty("key", openapi3.NewStringSchema()).
		WithProperty("size", openapi3.NewStringSchema().WithEnum("xs", "sm", "md", "lg", "xl")).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("hidden", openapi3.NewBoolSchema()).
		WithProperty("validation", openapi3.NewObjectSchema().WithProperty("required", openapi3.NewBoolSchema())).
		WithProperty("widget", openapi3.NewObjectSchema().WithProperty("type", openapi3.NewStringSchema())).
		WithProperty("customClass", openapi3.NewStringSchema()).
		WithProperty("dataSrc", openapi3.NewStringSchema()).
		WithProperty("values", values).
		WithProperty("data", openapi3.NewObjectSchema().WithProperty("values", values)).
		WithProperty("multiple", openapi3.NewBoolSchema())
	schema.Required = []string{"input", "label", "type", "key"}
	return schema
}

func formSchema(schemas openapi3.Schemas) *openapi3.Schema {
	list := openapi3.NewArraySchema()
	list.Items = ref(schemas, schemaComponent)
	schema := openapi3.NewObjectSchema().
		WithProperty("display", openapi3.NewStringSchema().WithEnum("form")).
		WithProperty("components", list)
	schema.Required = []string{"display", "components"}
	return schema
}

func submissionSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("is_valid", openapi3.NewBoolSchema()).
		WithProperty("validation_messages", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())).
		WithProperty("page_number", openapi3.NewIntegerSchema()).
		WithProperty("source_page_number", openapi3.NewIntegerSchema()).
		WithProperty("confirmation_message", openapi3.NewStringSchema()).
		WithProperty("confirmation_type", openapi3.NewStringSchema()).
		WithProperty("entry_id", openapi3.NewIntegerSchema())
	schema.Required = []string{"is_valid"}
	return schema
}
