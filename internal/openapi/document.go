// Package openapi builds the OpenAPI 3.1 document served at /openapi.json.
// The surface is small and fixed, so the document is constructed by hand
// rather than generated from introspection.
package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Document builds the OpenAPI description of the public API.
func Document(baseURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "NEIS API - National Energy Insights System",
			Description: "National and regional energy generation and emissions data, protected with short-lived API keys.",
			Version:     "1.1.0",
		},
		Servers: openapi3.Servers{
			{URL: baseURL},
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{}
	doc.Components = &components

	doc.Components.SecuritySchemes["apiKey"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type: "apiKey",
			In:   "header",
			Name: "X-API-Key",
		},
	}

	registerSchemas(doc)

	doc.Paths = openapi3.NewPaths()

	doc.Paths.Set("/api/generate-key", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"Authentication"},
			Summary:     "Generate an API key",
			Description: "Issues a new API key valid for 30 minutes. Issuance is unlimited and never invalidates existing keys.",
			OperationID: "generate_key",
			Responses:   successOnly("200", "Freshly issued key and its expiry", "#/components/schemas/KeyGrant"),
		},
	})

	doc.Paths.Set("/api/energy/summary", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"National Data"},
			Summary:     "National energy summary",
			Description: "Overall national generation and emissions totals.",
			OperationID: "national_summary",
			Security:    apiKeySecurity(),
			Parameters:  emissionsParameters(),
			Responses:   withErrors("200", "National summary", envelopeRef("NationalSummary"), "401"),
		},
	})

	doc.Paths.Set("/api/energy/region/{name}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"Regional Data"},
			Summary:     "Regional energy summary",
			Description: "Generation, per-source breakdown, and emissions for one region. Region names are case-sensitive.",
			OperationID: "region_summary",
			Security:    apiKeySecurity(),
			Parameters: append(openapi3.Parameters{
				{Value: &openapi3.Parameter{
					Name:     "name",
					In:       "path",
					Required: true,
					Schema:   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				}},
			}, emissionsParameters()...),
			Responses: withErrors("200", "Region summary", envelopeRef("RegionSummary"), "401", "404"),
		},
	})

	doc.Paths.Set("/api/energy/emissions/manual", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"Emissions Overrides"},
			Summary:     "Set a manual emissions value",
			Description: "Stores a manual emissions figure for a scope (\"national\" or a region name). The value must be non-negative; the scope is stored exactly as given.",
			OperationID: "set_manual_emissions",
			Security:    apiKeySecurity(),
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content:  openapi3.NewContentWithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/OverrideRequest", nil)),
				},
			},
			Responses: withErrors("200", "Stored override confirmation", envelopeRef("OverrideReceipt"), "400", "401"),
		},
	})

	doc.Paths.Set("/api/energy/examples", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"Examples"},
			Summary:     "Example usage",
			Description: "Example request URLs. No authentication required.",
			OperationID: "example_usage",
			Responses:   successOnly("200", "Example usage URLs", "#/components/schemas/Envelope"),
		},
	})

	return doc
}

func registerSchemas(doc *openapi3.T) {
	str := func() *openapi3.SchemaRef {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
	}
	num := func() *openapi3.SchemaRef {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}}}
	}

	doc.Components.Schemas["KeyGrant"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"api_key":    str(),
				"expires_at": str(),
			},
		},
	}

	doc.Components.Schemas["NationalSummary"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"total_generation": num(),
				"total_emissions":  num(),
				"emissions_source": emissionsSourceSchema(),
				"renewable_share":  num(),
			},
		},
	}

	doc.Components.Schemas["RegionSummary"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"region":           str(),
				"total_generation": num(),
				"by_source": &openapi3.SchemaRef{
					Value: &openapi3.Schema{
						Type: &openapi3.Types{"array"},
						Items: &openapi3.SchemaRef{
							Value: &openapi3.Schema{
								Type: &openapi3.Types{"object"},
								Properties: openapi3.Schemas{
									"source":         str(),
									"generation_MWh": num(),
								},
							},
						},
					},
				},
				"total_emissions":  num(),
				"emissions_source": emissionsSourceSchema(),
				"renewable_share":  num(),
			},
		},
	}

	doc.Components.Schemas["OverrideRequest"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:     &openapi3.Types{"object"},
			Required: []string{"scope", "value"},
			Properties: openapi3.Schemas{
				"scope": str(),
				"value": num(),
			},
		},
	}

	doc.Components.Schemas["OverrideReceipt"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"scope": str(),
				"value": num(),
			},
		},
	}

	doc.Components.Schemas["Envelope"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"status":  str(),
				"data":    {Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}},
				"message": str(),
			},
		},
	}

	doc.Components.Schemas["ErrorResponse"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"error": &openapi3.SchemaRef{
					Value: &openapi3.Schema{
						Type: &openapi3.Types{"object"},
						Properties: openapi3.Schemas{
							"code":    {Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}},
							"message": str(),
						},
					},
				},
			},
		},
	}
}

func emissionsSourceSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"string"},
			Enum: []interface{}{"calculated", "user_entered", "disabled"},
		},
	}
}

func apiKeySecurity() *openapi3.SecurityRequirements {
	reqs := openapi3.NewSecurityRequirements()
	reqs.With(openapi3.SecurityRequirement{"apiKey": {}})
	return reqs
}

// emissionsParameters returns the two boolean query parameters shared by the
// summary endpoints. Both default to true.
func emissionsParameters() openapi3.Parameters {
	boolSchema := func() *openapi3.SchemaRef {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}, Default: true}}
	}
	return openapi3.Parameters{
		{Value: &openapi3.Parameter{
			Name:        "estimate_emissions",
			In:          "query",
			Description: "When false, emissions are reported as 0 with source \"disabled\".",
			Schema:      boolSchema(),
		}},
		{Value: &openapi3.Parameter{
			Name:        "use_manual_override",
			In:          "query",
			Description: "When true, a recorded manual override takes precedence over the calculated total.",
			Schema:      boolSchema(),
		}},
	}
}

// envelopeRef wraps a data schema reference in the standard success envelope.
func envelopeRef(dataSchema string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"status": {Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"data":   openapi3.NewSchemaRef("#/components/schemas/"+dataSchema, nil),
			},
		},
	}
}

// successOnly builds a Responses map with a single success entry.
func successOnly(statusCode, description, schemaRef string) *openapi3.Responses {
	responses := openapi3.NewResponses()
	responses.Set(statusCode, &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &description,
			Content:     openapi3.NewContentWithJSONSchemaRef(openapi3.NewSchemaRef(schemaRef, nil)),
		},
	})
	return responses
}

// withErrors builds a Responses map with a success entry plus the listed
// error statuses, all sharing the ErrorResponse schema.
func withErrors(statusCode, description string, schema *openapi3.SchemaRef, errorCodes ...string) *openapi3.Responses {
	responses := openapi3.NewResponses()
	responses.Set(statusCode, &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &description,
			Content:     openapi3.NewContentWithJSONSchemaRef(schema),
		},
	})

	errorRef := openapi3.NewSchemaRef("#/components/schemas/ErrorResponse", nil)
	descriptions := map[string]string{
		"400": "Bad request",
		"401": "Unauthorized",
		"404": "Not found",
	}
	for _, code := range errorCodes {
		desc := descriptions[code]
		responses.Set(code, &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &desc,
				Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
			},
		})
	}
	return responses
}
