// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/conduit/main.go -o docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.registerRequest"}}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Authenticate and issue a token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.loginRequest"}}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/user": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "put": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update current user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.updateUserRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/profiles/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "View a profile",
                "parameters": [{"type": "string", "in": "path", "name": "username", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/profiles/{username}/follow": {
            "post": {
                "security": [{"TokenAuth": []}],
                "tags": ["profiles"],
                "summary": "Follow a user",
                "parameters": [{"type": "string", "in": "path", "name": "username", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"TokenAuth": []}],
                "tags": ["profiles"],
                "summary": "Unfollow a user",
                "parameters": [{"type": "string", "in": "path", "name": "username", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/articles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "List articles",
                "parameters": [
                    {"type": "string", "in": "query", "name": "tag"},
                    {"type": "string", "in": "query", "name": "author"},
                    {"type": "string", "in": "query", "name": "favorited"},
                    {"type": "integer", "default": 20, "in": "query", "name": "limit"},
                    {"type": "integer", "default": 0, "in": "query", "name": "offset"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Create an article",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.articleRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/articles/feed": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Articles by followed authors",
                "parameters": [
                    {"type": "integer", "default": 20, "in": "query", "name": "limit"},
                    {"type": "integer", "default": 0, "in": "query", "name": "offset"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/articles/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Fetch an article",
                "parameters": [{"type": "string", "in": "path", "name": "slug", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Update an article",
                "parameters": [
                    {"type": "string", "in": "path", "name": "slug", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.articleRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"TokenAuth": []}],
                "tags": ["articles"],
                "summary": "Delete an article",
                "parameters": [{"type": "string", "in": "path", "name": "slug", "required": true}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/articles/{slug}/favorite": {
            "post": {
                "security": [{"TokenAuth": []}],
                "tags": ["articles"],
                "summary": "Favorite an article",
                "parameters": [{"type": "string", "in": "path", "name": "slug", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"TokenAuth": []}],
                "tags": ["articles"],
                "summary": "Unfavorite an article",
                "parameters": [{"type": "string", "in": "path", "name": "slug", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/articles/{slug}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List an article's comments, newest first",
                "parameters": [{"type": "string", "in": "path", "name": "slug", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on an article",
                "parameters": [
                    {"type": "string", "in": "path", "name": "slug", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.commentRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/articles/{slug}/comments/{id}": {
            "delete": {
                "security": [{"TokenAuth": []}],
                "tags": ["comments"],
                "summary": "Delete a comment",
                "parameters": [
                    {"type": "string", "in": "path", "name": "slug", "required": true},
                    {"type": "integer", "in": "path", "name": "id", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/tags": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tags"],
                "summary": "Distinct tags across all articles",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "server.registerRequest": {
            "type": "object",
            "properties": {"user": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}}}
        },
        "server.loginRequest": {
            "type": "object",
            "properties": {"user": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}}}
        },
        "server.updateUserRequest": {
            "type": "object",
            "properties": {"user": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "bio": {"type": "string"}, "image": {"type": "string"}}}}
        },
        "server.articleRequest": {
            "type": "object",
            "properties": {"article": {"type": "object", "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "body": {"type": "string"}, "tagList": {"type": "array", "items": {"type": "string"}}}}}
        },
        "server.commentRequest": {
            "type": "object",
            "properties": {"comment": {"type": "object", "properties": {"body": {"type": "string"}}}}
        }
    },
    "securityDefinitions": {
        "TokenAuth": {
            "description": "Type \"Token\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Conduit API",
	Description:      "Blogging platform API with users, profiles, articles, favorites, comments and tags.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
