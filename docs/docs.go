// Package docs registers the swagger document served under /swagger.
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
        "/housing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["housing"],
                "summary": "List housing",
                "parameters": [
                    {"type": "boolean", "name": "available", "in": "query"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "integer", "name": "minRooms", "in": "query"},
                    {"type": "integer", "name": "maxRooms", "in": "query"},
                    {"type": "integer", "name": "minBathrooms", "in": "query"},
                    {"type": "integer", "name": "maxBathrooms", "in": "query"},
                    {"type": "string", "name": "address", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HousingListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["housing"],
                "summary": "Create housing",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateHousingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.HousingResponse"}},
                    "400": {"description": "invalid owner / invalid address", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "geocoding unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/housing/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["housing"],
                "summary": "Get housing",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HousingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["housing"],
                "summary": "Update housing",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateHousingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HousingResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["housing"],
                "summary": "Delete housing",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "ownerId", "in": "query"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/housing/{id}/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["housing"],
                "summary": "Is the listing recent",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecentResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reviews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "List reviews",
                "parameters": [
                    {"type": "integer", "name": "housingId", "in": "query"},
                    {"type": "integer", "name": "userId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ReviewListResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Create review",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.ReviewResponse"}},
                    "400": {"description": "score out of range / invalid user / invalid housing / duplicate review", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reviews/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Get review",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ReviewResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Update review",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ReviewResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["reviews"],
                "summary": "Delete review",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "400": {"description": "user already exists / invalid email", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "identity provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User login",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Session"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "email not verified", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update current user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "400": {"description": "user not found / invalid email", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/s3/presignedpost": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Presign upload",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PresignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Upload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.CreateHousingRequest": {
            "type": "object",
            "required": ["title", "address", "price", "rooms", "bathrooms", "size", "ownerId"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "address": {"type": "string"},
                "price": {"type": "number"},
                "rooms": {"type": "integer"},
                "bathrooms": {"type": "integer"},
                "size": {"type": "number"},
                "available": {"type": "boolean"},
                "images": {"type": "array", "items": {"type": "string"}},
                "ownerId": {"type": "integer"}
            }
        },
        "handlers.UpdateHousingRequest": {
            "type": "object",
            "required": ["ownerId"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "address": {"type": "string"},
                "price": {"type": "number"},
                "rooms": {"type": "integer"},
                "bathrooms": {"type": "integer"},
                "size": {"type": "number"},
                "available": {"type": "boolean"},
                "images": {"type": "array", "items": {"type": "string"}},
                "ownerId": {"type": "integer"}
            }
        },
        "handlers.HousingResponse": {
            "type": "object",
            "properties": {"housing": {"$ref": "#/definitions/models.Housing"}}
        },
        "handlers.HousingListResponse": {
            "type": "object",
            "properties": {"housing": {"type": "array", "items": {"$ref": "#/definitions/models.Housing"}}}
        },
        "handlers.RecentResponse": {
            "type": "object",
            "properties": {"isRecent": {"type": "boolean"}}
        },
        "handlers.CreateReviewRequest": {
            "type": "object",
            "required": ["housingId", "score"],
            "properties": {
                "userId": {"type": "integer"},
                "housingId": {"type": "integer"},
                "score": {"type": "integer"},
                "comment": {"type": "string"}
            }
        },
        "handlers.UpdateReviewRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "score": {"type": "integer"},
                "comment": {"type": "string"}
            }
        },
        "handlers.ReviewResponse": {
            "type": "object",
            "properties": {"review": {"$ref": "#/definitions/models.Review"}}
        },
        "handlers.ReviewListResponse": {
            "type": "object",
            "properties": {"reviews": {"type": "array", "items": {"$ref": "#/definitions/models.Review"}}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password", "type"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.UpdateUserRequest": {
            "type": "object",
            "required": ["email", "name", "type"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/models.User"}}
        },
        "handlers.PresignRequest": {
            "type": "object",
            "required": ["filename"],
            "properties": {
                "filename": {"type": "string"},
                "contentType": {"type": "string"}
            }
        },
        "models.Housing": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "address": {"type": "string"},
                "price": {"type": "number"},
                "rooms": {"type": "integer"},
                "bathrooms": {"type": "integer"},
                "size": {"type": "number"},
                "available": {"type": "boolean"},
                "images": {"type": "array", "items": {"type": "string"}},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "ownerId": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "housingId": {"type": "integer"},
                "score": {"type": "integer"},
                "comment": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "externalId": {"type": "string"},
                "type": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Session": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "models.Upload": {
            "type": "object",
            "properties": {
                "presignedPost": {
                    "type": "object",
                    "properties": {
                        "url": {"type": "string"},
                        "fields": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                },
                "fileUrl": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "student-housing API",
	Description:      "Marketplace of student housing: listings, reviews, users and image uploads",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
