// Package openapi generates the OpenAPI 3.1 document describing the folio
// HTTP API. The document is built programmatically so it can never drift from
// the handler code without a reviewer noticing the change here.
package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// resource describes one portfolio collection exposed by the API.
type resource struct {
	name     string // path segment, e.g. "projects"
	schema   string // component schema name, e.g. "Project"
	tag      string
	bySlug   bool // detail route keyed by slug instead of id
	fields   openapi3.Schemas
	required []string
}

// Generate builds the OpenAPI document for the full API surface.
func Generate(baseURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "Folio API",
			Description: "Portfolio content API with an access-controlled admin surface.",
			Version:     "1.0.0",
		},
		Servers: openapi3.Servers{
			{URL: baseURL},
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{}
	doc.Components = &components

	doc.Components.SecuritySchemes["bearerAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	doc.Paths = openapi3.NewPaths()

	doc.Components.Schemas["ErrorResponse"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": boolSchema(),
				"message": stringSchema(),
				"code":    stringSchema(),
			},
		},
	}

	for _, res := range resources() {
		doc.Components.Schemas[res.schema] = &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:       &openapi3.Types{"object"},
				Properties: res.fields,
				Required:   res.required,
			},
		}
		addResourcePaths(doc, res)
	}

	addSessionPaths(doc)
	addMessagePaths(doc)
	addAccountPaths(doc)

	return doc
}

func resources() []resource {
	return []resource{
		{
			name: "projects", schema: "Project", tag: "projects", bySlug: true,
			fields: openapi3.Schemas{
				"id":           intSchema(),
				"title":        stringSchema(),
				"slug":         stringSchema(),
				"summary":      stringSchema(),
				"description":  stringSchema(),
				"technologies": stringArraySchema(),
				"image_url":    stringSchema(),
				"live_url":     stringSchema(),
				"repo_url":     stringSchema(),
				"featured":     boolSchema(),
				"sort_order":   intSchema(),
				"created_at":   dateTimeSchema(),
				"updated_at":   dateTimeSchema(),
			},
			required: []string{"title"},
		},
		{
			name: "skills", schema: "Skill", tag: "skills",
			fields: openapi3.Schemas{
				"id":         intSchema(),
				"name":       stringSchema(),
				"category":   stringSchema(),
				"level":      intSchema(),
				"icon_url":   stringSchema(),
				"sort_order": intSchema(),
				"created_at": dateTimeSchema(),
				"updated_at": dateTimeSchema(),
			},
			required: []string{"name"},
		},
		{
			name: "certificates", schema: "Certificate", tag: "certificates",
			fields: openapi3.Schemas{
				"id":             intSchema(),
				"title":          stringSchema(),
				"issuer":         stringSchema(),
				"issue_date":     dateTimeSchema(),
				"credential_id":  stringSchema(),
				"credential_url": stringSchema(),
				"image_url":      stringSchema(),
				"sort_order":     intSchema(),
				"created_at":     dateTimeSchema(),
				"updated_at":     dateTimeSchema(),
			},
			required: []string{"title", "issuer"},
		},
		{
			name: "education", schema: "Education", tag: "education",
			fields: openapi3.Schemas{
				"id":          intSchema(),
				"institution": stringSchema(),
				"degree":      stringSchema(),
				"field":       stringSchema(),
				"start_year":  intSchema(),
				"end_year":    intSchema(),
				"description": stringSchema(),
				"sort_order":  intSchema(),
				"created_at":  dateTimeSchema(),
				"updated_at":  dateTimeSchema(),
			},
			required: []string{"institution", "degree"},
		},
	}
}

// addResourcePaths registers the public reads and admin mutations for one
// collection.
func addResourcePaths(doc *openapi3.T, res resource) {
	schemaRef := fmt.Sprintf("#/components/schemas/%s", res.schema)

	doc.Paths.Set("/api/v1/"+res.name, &openapi3.PathItem{
		Get: listOperation(res.tag, res.name, schemaRef),
	})
	if res.bySlug {
		doc.Paths.Set("/api/v1/"+res.name+"/{slug}", &openapi3.PathItem{
			Get:        detailOperation(res.tag, res.name, schemaRef),
			Parameters: openapi3.Parameters{pathParameter("slug")},
		})
	}

	doc.Paths.Set("/api/v1/admin/"+res.name, &openapi3.PathItem{
		Post: securedOperation(createOperation(res.tag, res.name, schemaRef)),
	})
	doc.Paths.Set("/api/v1/admin/"+res.name+"/{id}", &openapi3.PathItem{
		Put:        securedOperation(updateOperation(res.tag, res.name, schemaRef)),
		Delete:     securedOperation(deleteOperation(res.tag, res.name)),
		Parameters: openapi3.Parameters{pathParameter("id")},
	})
}

func addSessionPaths(doc *openapi3.T) {
	doc.Components.Schemas["LoginRequest"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"email":    stringSchema(),
				"password": stringSchema(),
			},
			Required: []string{"email", "password"},
		},
	}
	doc.Components.Schemas["LoginResponse"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success":   boolSchema(),
				"admin":     openapi3.NewSchemaRef("#/components/schemas/Admin", nil),
				"token":     stringSchema(),
				"expiresIn": intSchema(),
			},
		},
	}
	doc.Components.Schemas["Admin"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"id":    intSchema(),
				"name":  stringSchema(),
				"email": stringSchema(),
				"role":  stringSchema(),
			},
		},
	}

	login := openapi3.NewOperation()
	login.OperationID = "login"
	login.Tags = []string{"session"}
	login.Summary = "Authenticate and obtain a session token"
	login.RequestBody = jsonRequestBody("#/components/schemas/LoginRequest")
	login.AddResponse(200, jsonResponse("Authenticated", "#/components/schemas/LoginResponse"))
	login.AddResponse(401, errorResponse("Invalid credentials"))
	login.AddResponse(403, errorResponse("Account deactivated or source address not allowed"))
	login.AddResponse(423, errorResponse("Account locked after repeated failures"))
	login.AddResponse(429, errorResponse("Too many login attempts"))

	logout := openapi3.NewOperation()
	logout.OperationID = "logout"
	logout.Tags = []string{"session"}
	logout.Summary = "End the session client-side"
	logout.AddResponse(200, plainSuccessResponse("Session ended"))

	doc.Paths.Set("/api/v1/admin/session", &openapi3.PathItem{
		Post:   login,
		Delete: logout,
	})
}

func addMessagePaths(doc *openapi3.T) {
	doc.Components.Schemas["ContactMessage"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"id":         intSchema(),
				"name":       stringSchema(),
				"email":      stringSchema(),
				"subject":    stringSchema(),
				"body":       stringSchema(),
				"is_read":    boolSchema(),
				"created_at": dateTimeSchema(),
			},
			Required: []string{"name", "email", "body"},
		},
	}
	schemaRef := "#/components/schemas/ContactMessage"

	submit := openapi3.NewOperation()
	submit.OperationID = "submitMessage"
	submit.Tags = []string{"messages"}
	submit.Summary = "Submit a contact-form message"
	submit.RequestBody = jsonRequestBody(schemaRef)
	submit.AddResponse(201, jsonResponse("Message accepted", schemaRef))
	submit.AddResponse(429, errorResponse("Too many submissions"))

	doc.Paths.Set("/api/v1/messages", &openapi3.PathItem{Post: submit})

	doc.Paths.Set("/api/v1/admin/messages", &openapi3.PathItem{
		Get: securedOperation(listOperation("messages", "messages", schemaRef)),
	})

	markRead := openapi3.NewOperation()
	markRead.OperationID = "markMessageRead"
	markRead.Tags = []string{"messages"}
	markRead.Summary = "Mark a message as read"
	markRead.AddResponse(200, plainSuccessResponse("Marked read"))
	markRead.AddResponse(404, errorResponse("Message not found"))

	doc.Paths.Set("/api/v1/admin/messages/{id}/read", &openapi3.PathItem{
		Put:        securedOperation(markRead),
		Parameters: openapi3.Parameters{pathParameter("id")},
	})
	doc.Paths.Set("/api/v1/admin/messages/{id}", &openapi3.PathItem{
		Delete:     securedOperation(deleteOperation("messages", "messages")),
		Parameters: openapi3.Parameters{pathParameter("id")},
	})
}

func addAccountPaths(doc *openapi3.T) {
	account := openapi3.NewOperation()
	account.OperationID = "getAccount"
	account.Tags = []string{"session"}
	account.Summary = "Return the authenticated admin's profile"
	account.AddResponse(200, jsonResponse("The admin profile", "#/components/schemas/Admin"))
	account.AddResponse(401, errorResponse("Missing or invalid token"))

	doc.Paths.Set("/api/v1/admin/account", &openapi3.PathItem{
		Get: securedOperation(account),
	})

	doc.Components.Schemas["AuthEvent"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"id":         intSchema(),
				"event":      stringSchema(),
				"email":      stringSchema(),
				"source_ip":  stringSchema(),
				"created_at": dateTimeSchema(),
			},
		},
	}

	trail := listOperation("session", "audit events", "#/components/schemas/AuthEvent")
	trail.OperationID = "getAuditTrail"
	trail.Summary = "Return recent authentication events"
	doc.Paths.Set("/api/v1/admin/audit", &openapi3.PathItem{
		Get: securedOperation(trail),
	})
}

// --- operation builders ---

func listOperation(tag, name, schemaRef string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "list_" + name
	op.Tags = []string{tag}
	op.Summary = fmt.Sprintf("List %s", name)
	op.AddResponse(200, listResponse(schemaRef))
	return op
}

func detailOperation(tag, name, schemaRef string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "get_" + name
	op.Tags = []string{tag}
	op.Summary = fmt.Sprintf("Get one of %s", name)
	op.AddResponse(200, jsonResponse("The record", schemaRef))
	op.AddResponse(404, errorResponse("Not found"))
	return op
}

func createOperation(tag, name, schemaRef string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "create_" + name
	op.Tags = []string{tag}
	op.Summary = fmt.Sprintf("Create a record in %s", name)
	op.RequestBody = jsonRequestBody(schemaRef)
	op.AddResponse(201, jsonResponse("Created record", schemaRef))
	op.AddResponse(400, errorResponse("Validation failed"))
	return op
}

func updateOperation(tag, name, schemaRef string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "update_" + name
	op.Tags = []string{tag}
	op.Summary = fmt.Sprintf("Replace a record in %s", name)
	op.RequestBody = jsonRequestBody(schemaRef)
	op.AddResponse(200, jsonResponse("Updated record", schemaRef))
	op.AddResponse(404, errorResponse("Not found"))
	return op
}

func deleteOperation(tag, name string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "delete_" + name
	op.Tags = []string{tag}
	op.Summary = fmt.Sprintf("Delete a record from %s", name)
	op.AddResponse(200, plainSuccessResponse("Deleted"))
	op.AddResponse(404, errorResponse("Not found"))
	return op
}

// securedOperation marks an operation as requiring a bearer token.
func securedOperation(op *openapi3.Operation) *openapi3.Operation {
	op.Security = &openapi3.SecurityRequirements{{"bearerAuth": {}}}
	return op
}

// --- response and schema builders ---

func jsonRequestBody(schemaRef string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(openapi3.NewSchemaRef(schemaRef, nil)),
	}
}

func jsonResponse(description, schemaRef string) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchema(&openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": boolSchema(),
				"data":    openapi3.NewSchemaRef(schemaRef, nil),
			},
		})
}

func listResponse(schemaRef string) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription("List of records").
		WithJSONSchema(&openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": boolSchema(),
				"data": &openapi3.SchemaRef{
					Value: &openapi3.Schema{
						Type:  &openapi3.Types{"array"},
						Items: openapi3.NewSchemaRef(schemaRef, nil),
					},
				},
				"count": intSchema(),
			},
		})
}

func errorResponse(description string) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/ErrorResponse", nil))
}

func plainSuccessResponse(description string) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchema(&openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"success": boolSchema(),
			},
		})
}

func pathParameter(name string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   stringSchema(),
		},
	}
}

func stringSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
}

func intSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}}
}

func boolSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}
}

func dateTimeSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}}
}

func stringArraySchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: stringSchema(),
		},
	}
}
