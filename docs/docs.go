// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/sportify/docs.go -o docs` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "database unreachable"}}}},
        "/admin/login": {"post": {"tags": ["admin"], "summary": "Admin login", "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}, "401": {"description": "unauthorized"}, "429": {"description": "too_many_requests"}}}},
        "/admin/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Current admin", "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}}},
        "/admin/list": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List admins", "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}}}},
        "/admin/create": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create an admin", "responses": {"201": {"description": "Created"}, "400": {"description": "bad_request"}, "403": {"description": "forbidden"}}}},
        "/admin/change-password": {"put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Change a password", "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}, "401": {"description": "unauthorized"}, "403": {"description": "forbidden"}}}},
        "/admin/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete an admin", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}, "404": {"description": "not_found"}}}},
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Created"}, "400": {"description": "bad_request"}}}
        },
        "/categories/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Delete a category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}, "404": {"description": "not_found"}}}},
        "/events": {
            "get": {"tags": ["events"], "summary": "List published events", "parameters": [{"type": "string", "name": "category", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Create an event", "responses": {"201": {"description": "Created"}, "400": {"description": "bad_request"}}}
        },
        "/events/admin": {"get": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "List events in the admin panel", "responses": {"200": {"description": "OK"}}}},
        "/events/pending": {"get": {"security": [{"BearerAuth": []}], "tags": ["moderation"], "summary": "List the moderation queue", "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}}}},
        "/events/{id}": {
            "get": {"tags": ["events"], "summary": "Get a published event", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not_found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Update an event", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}, "409": {"description": "conflict"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Delete an event", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "forbidden"}, "409": {"description": "conflict"}}}
        },
        "/events/{id}/approve": {"put": {"security": [{"BearerAuth": []}], "tags": ["moderation"], "summary": "Approve an event", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "conflict"}}}},
        "/events/{id}/approve-edit": {"put": {"security": [{"BearerAuth": []}], "tags": ["moderation"], "summary": "Approve a pending edit", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "conflict"}}}},
        "/events/{id}/reject": {"put": {"security": [{"BearerAuth": []}], "tags": ["moderation"], "summary": "Reject an event or a pending edit", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "conflict"}}}},
        "/events/{id}/approve-delete": {"delete": {"security": [{"BearerAuth": []}], "tags": ["moderation"], "summary": "Approve a delete request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "conflict"}}}},
        "/events/{id}/reject-delete": {"put": {"security": [{"BearerAuth": []}], "tags": ["moderation"], "summary": "Reject a delete request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "conflict"}}}},
        "/feedback": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["feedback"], "summary": "List feedback", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["feedback"], "summary": "Leave feedback", "responses": {"201": {"description": "Created"}, "400": {"description": "bad_request"}}}
        },
        "/feedback/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["feedback"], "summary": "Delete feedback", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not_found"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Sportify API",
	Description:      "Sports event listings with an admin moderation workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
