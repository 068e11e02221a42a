// Package docs registers the OpenAPI description served under /swagger.
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
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.PingResponse"}}
                }
            }
        },
        "/verify": {
            "get": {
                "description": "Checks the address for an existing attestation and for a tip of exactly the verification fee, then returns the Google authorization URL.",
                "produces": ["application/json"],
                "tags": ["verification"],
                "summary": "Start verification",
                "parameters": [
                    {"type": "string", "description": "Arweave wallet address", "name": "address", "in": "query", "required": true},
                    {"type": "string", "description": "URI to redirect to after a successful attestation", "name": "return", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VerifyResponse"}},
                    "400": {"description": "Missing address or no tip", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Ledger unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/verify/callback": {
            "get": {
                "description": "OAuth redirect target. Exchanges the code, checks the email is verified and broadcasts the attestation. Redirects to the return URI from state when one was given.",
                "produces": ["application/json"],
                "tags": ["verification"],
                "summary": "Complete verification",
                "parameters": [
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "State issued by GET /verify", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CallbackResponse"}},
                    "302": {"description": "Redirect to the return URI", "schema": {"$ref": "#/definitions/http.CallbackResponse"}},
                    "400": {"description": "Missing code or invalid state", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "403": {"description": "No access token or email not verified", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Verification in progress", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Identity provider or ledger unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.CallbackResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "http.PingResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "status": {"type": "string", "example": "alive"},
                "version": {"type": "string", "example": "1.0.0"}
            }
        },
        "http.VerifyResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "already verified"},
                "status": {"type": "string", "example": "success"},
                "uri": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ArVerify Node API",
	Description:      "Tip-gated identity attestation for Arweave addresses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
