// Package docs registers the OpenAPI description of the HTTP API with swag.
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
        "/auth/signup": {
            "post": {"tags": ["auth"], "summary": "Create an account", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SignupRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Revoke the presented token",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}}}
        },
        "/user/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/tasks": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "List visible tasks",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "priority", "in": "query"},
                    {"type": "string", "name": "assigneeId", "in": "query"},
                    {"type": "string", "name": "projectId", "in": "query"},
                    {"type": "string", "name": "milestoneId", "in": "query"},
                    {"type": "string", "name": "createdBy", "in": "query"},
                    {"type": "string", "name": "tags", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "dueDateFrom", "in": "query"},
                    {"type": "string", "name": "dueDateTo", "in": "query"},
                    {"type": "boolean", "name": "isOverdue", "in": "query"},
                    {"type": "boolean", "name": "hasSubtasks", "in": "query"},
                    {"type": "string", "name": "sortBy", "in": "query"},
                    {"type": "string", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTasksResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Create a task",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTaskRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TaskMessageResponse"}},
                    "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/tasks/bulk": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Update many tasks at once",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BulkUpdateRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BulkUpdateResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/tasks/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Task statistics",
                "parameters": [{"type": "string", "name": "projectId", "in": "query"}, {"type": "integer", "name": "timeRange", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatsResponse"}}}}
        },
        "/tasks/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Get a task with related records",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Update a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTaskRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaskMessageResponse"}}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Delete a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tasks/{id}/comments": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Comment on a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}/time-entries": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Log time on a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}/dependencies": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["tasks"], "summary": "Mark a task as blocked by another",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/workspaces": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["workspaces"], "summary": "Workspaces the caller belongs to", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["workspaces"], "summary": "Create a workspace", "responses": {"201": {"description": "Created"}}}
        },
        "/workspaces/{id}/members": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["workspaces"], "summary": "Add a member to a workspace",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Projects in the caller's workspaces", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Create a project in a workspace", "responses": {"201": {"description": "Created"}}}
        },
        "/projects/{id}/milestones": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Add a milestone to a project",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/tags": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tags"], "summary": "All tags", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["tags"], "summary": "Create a tag", "responses": {"201": {"description": "Created"}}}
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "dto.FieldError": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}},
        "dto.ValidationErrorResponse": {"type": "object", "properties": {"error": {"type": "string"},
            "details": {"type": "array", "items": {"$ref": "#/definitions/dto.FieldError"}}}},
        "dto.SignupRequest": {"type": "object", "required": ["email", "password"], "properties": {
            "email": {"type": "string"}, "password": {"type": "string"}, "username": {"type": "string"}, "name": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {
            "email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.AuthResponse": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"},
            "expiresAt": {"type": "string"}, "user": {"type": "object"}}},
        "dto.CreateTaskRequest": {"type": "object", "required": ["title"], "properties": {
            "title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"}, "priority": {"type": "string"},
            "startDate": {"type": "string"}, "dueDate": {"type": "string"}, "estimatedHours": {"type": "number"},
            "assigneeId": {"type": "string"}, "projectId": {"type": "string"}, "milestoneId": {"type": "string"},
            "parentId": {"type": "string"}, "position": {"type": "integer"}, "tags": {"type": "array", "items": {"type": "string"}}}},
        "dto.UpdateTaskRequest": {"type": "object", "properties": {
            "title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"}, "priority": {"type": "string"},
            "startDate": {"type": "string"}, "dueDate": {"type": "string"}, "estimatedHours": {"type": "number"},
            "assigneeId": {"type": "string"}, "projectId": {"type": "string"}, "milestoneId": {"type": "string"},
            "parentId": {"type": "string"}, "position": {"type": "integer"}, "tags": {"type": "array", "items": {"type": "string"}}}},
        "dto.BulkUpdateRequest": {"type": "object", "required": ["taskIds"], "properties": {
            "taskIds": {"type": "array", "items": {"type": "string"}}, "updates": {"type": "object"}}},
        "dto.BulkUpdateResponse": {"type": "object", "properties": {"message": {"type": "string"}, "updatedCount": {"type": "integer"}}},
        "dto.TaskMessageResponse": {"type": "object", "properties": {"message": {"type": "string"}, "task": {"type": "object"}}},
        "dto.ListTasksResponse": {"type": "object", "properties": {"tasks": {"type": "array", "items": {"type": "object"}},
            "pagination": {"type": "object"}, "filters": {"type": "object"}}},
        "dto.StatsResponse": {"type": "object", "properties": {"stats": {"type": "object"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and the token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Taskboard API",
	Description:      "Task management API with workspaces, filtering, bulk updates and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
