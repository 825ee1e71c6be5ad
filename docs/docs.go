// Package docs holds the OpenAPI document served at /swagger/doc.json.
// It mirrors the godoc annotations on the handlers; regenerate with
// `swag init -g main.go` after changing them.
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
        "/api/auth/login": {
            "post": {
                "description": "Logs in a user. The session token is returned in the body and as an HTTP-only cookie.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "User Login",
                "parameters": [
                    {
                        "description": "User login credentials",
                        "name": "loginBody",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "400": {"description": "Bad Request - Invalid email or password", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/api/auth/logout": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Clears the session cookie. Tokens are not revoked server-side; they expire.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "User Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.StatusResponse"}},
                    "401": {"description": "Unauthorized - Invalid or missing token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Registers a new user. Only administrators may register users.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "User Registration",
                "parameters": [
                    {
                        "description": "User registration details",
                        "name": "registerBody",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "User created successfully", "schema": {"$ref": "#/definitions/auth.UserResponse"}},
                    "400": {"description": "Bad Request - Invalid input or missing fields", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized - Invalid or missing token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "403": {"description": "Forbidden - Caller is not an administrator", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "409": {"description": "Conflict - Email already registered", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/api/healthchecker": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.StatusResponse"}}
                }
            }
        },
        "/api/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns one page of the stock view, scoped to the caller's customer.\nUnknown sort fields fall back to Codice; unknown directions to DESC.",
                "produces": ["application/json"],
                "tags": ["Inventory"],
                "summary": "List stock",
                "parameters": [
                    {"minimum": 0, "type": "integer", "description": "1-based page number", "name": "page", "in": "query"},
                    {"minimum": 0, "type": "integer", "description": "Page size, at most 20", "name": "size", "in": "query"},
                    {"type": "string", "default": "Codice", "description": "Column to sort by", "name": "sorting_field", "in": "query"},
                    {"type": "string", "default": "DESC", "description": "ASC or DESC", "name": "sorting_dir", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inventory.PageResult"}},
                    "400": {"description": "Bad Request - page or size is not a non-negative integer", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized - Invalid or missing token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "403": {"description": "Forbidden - Account has no customer and unscoped listing is disabled", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "503": {"description": "Inventory source busy", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/api/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the authenticated user without the password digest.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get current user's profile",
                "responses": {
                    "200": {"description": "Successfully retrieved user profile", "schema": {"$ref": "#/definitions/auth.UserResponse"}},
                    "401": {"description": "Unauthorized - Invalid or missing token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "fail"},
                "message": {"type": "string", "example": "You are not logged in, please provide token"}
            }
        },
        "auth.FilteredUser": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "customerName": {"type": "string"},
                "photo": {"type": "string"},
                "verified": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "mario@example.com"},
                "password": {"type": "string", "example": "strongpassword123"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "token": {"type": "string"}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "example": "Mario Rossi"},
                "email": {"type": "string", "maxLength": 255, "example": "mario@example.com"},
                "password": {"type": "string", "minLength": 8, "maxLength": 72, "example": "strongpassword123"},
                "role": {"type": "string", "maxLength": 50, "example": "user"},
                "customer_name": {"type": "string", "maxLength": 255, "example": "ACME S.p.A."}
            }
        },
        "auth.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "message": {"type": "string"}
            }
        },
        "auth.UserEnvelope": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/auth.FilteredUser"}
            }
        },
        "auth.UserResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {"$ref": "#/definitions/auth.UserEnvelope"}
            }
        },
        "inventory.InventoryRow": {
            "type": "object",
            "properties": {
                "codice": {"type": "string"},
                "materiale": {"type": "string"},
                "spessore": {"type": "number"},
                "dimX": {"type": "number"},
                "dimY": {"type": "number"},
                "area": {"type": "number"},
                "peso": {"type": "number"},
                "ritaglio": {"type": "integer"},
                "qta": {"type": "integer"},
                "udata1": {"type": "string"},
                "udata2": {"type": "string"},
                "udata3": {"type": "string"}
            }
        },
        "inventory.PageResult": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/inventory.InventoryRow"}},
                "current_page": {"type": "integer", "example": 1},
                "total_pages": {"type": "integer", "example": 3},
                "total_count": {"type": "integer", "example": 45}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize. Browsers use the ` + "`" + `token` + "`" + ` cookie instead.",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Stockview API",
	Description:      "Authenticated, tenant-scoped listing of sheet-metal stock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
