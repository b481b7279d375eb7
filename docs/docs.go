// Package docs holds the registered OpenAPI document of the Atlas API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support Team"
        },
        "license": {
            "name": "MIT License",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/healthz": {
            "get": {"tags": ["health"], "summary": "Health Check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthInfo"}}}}
        },
        "/api/v1/countries": {
            "get": {"tags": ["countries"], "summary": "List countries",
                "parameters": [
                    {"type": "string", "name": "term", "in": "query"},
                    {"type": "string", "name": "region", "in": "query"},
                    {"type": "string", "name": "language", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/countries/facets": {
            "get": {"tags": ["countries"], "summary": "Available regions and languages",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/countries/search": {
            "get": {"tags": ["countries"], "summary": "Search countries by name",
                "parameters": [{"type": "string", "name": "name", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/countries/region/{region}": {
            "get": {"tags": ["countries"], "summary": "Countries of a region",
                "parameters": [{"type": "string", "name": "region", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/countries/code/{code}": {
            "get": {"tags": ["countries"], "summary": "Country detail",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions": {
            "post": {"tags": ["explore"], "summary": "Open an explore session",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions/{id}": {
            "get": {"tags": ["explore"], "summary": "Session state",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}},
            "delete": {"tags": ["explore"], "summary": "Close a session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions/{id}/filters": {
            "put": {"tags": ["explore"], "summary": "Replace the session filter",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/explorer.FilterRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions/{id}/term": {
            "post": {"tags": ["explore"], "summary": "Type into the search term",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "name": "flush", "in": "query"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/explorer.TermRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions/{id}/reset": {
            "post": {"tags": ["explore"], "summary": "Clear every predicate",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions/{id}/reload": {
            "post": {"tags": ["explore"], "summary": "Refetch the country list",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions/{id}/countries": {
            "get": {"tags": ["explore"], "summary": "Visible countries",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/explore/sessions/{id}/facets": {
            "get": {"tags": ["explore"], "summary": "Session facets",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/favorites": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "List favorites",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/favorites/toggle": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Toggle a favorite",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/favorites.ToggleRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/favorites/{code}": {
            "get": {"tags": ["favorites"], "summary": "Favorite status",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/users/register": {
            "post": {"tags": ["users"], "summary": "Register a new user",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.RegisterUserRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/users/login": {
            "post": {"tags": ["users"], "summary": "Sign in",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/users/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Sign out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        },
        "/api/v1/users/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Current identity",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}}}
        }
    },
    "definitions": {
        "api.ErrorInfo": {"type": "object", "properties": {
            "code": {"type": "string"}, "details": {}, "message": {"type": "string"}}},
        "api.HealthInfo": {"type": "object", "properties": {
            "environment": {"type": "string"}, "status": {"type": "string"}, "version": {"type": "string"}}},
        "api.Response": {"type": "object", "properties": {
            "data": {}, "error": {"$ref": "#/definitions/api.ErrorInfo"}, "message": {"type": "string"},
            "meta": {}, "success": {"type": "boolean"}}},
        "explorer.FilterRequest": {"type": "object", "properties": {
            "language": {"type": "string"}, "region": {"type": "string"}, "term": {"type": "string"}}},
        "explorer.TermRequest": {"type": "object", "properties": {"term": {"type": "string"}}},
        "favorites.ToggleRequest": {"type": "object", "required": ["code"], "properties": {"code": {"type": "string"}}},
        "user.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {
            "email": {"type": "string"}, "password": {"type": "string"}}},
        "user.RegisterUserRequest": {"type": "object", "required": ["email", "name", "password"], "properties": {
            "email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Atlas API",
	Description:      "Browse, filter and bookmark the countries of the world.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
