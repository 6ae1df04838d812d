// Package docs registers the OpenAPI description served at /swagger.
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
        "/properties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "List properties",
                "parameters": [
                    {"type": "integer", "description": "Property type id", "name": "typeId", "in": "query"},
                    {"type": "string", "description": "Search text", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "List a new property",
                "parameters": [
                    {"description": "Property", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PropertyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/properties/{id}/reservations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Reservations of a property",
                "parameters": [{"type": "integer", "description": "Property id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Book a property",
                "parameters": [
                    {"type": "integer", "description": "Property id", "name": "id", "in": "path", "required": true},
                    {"description": "Stay", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/properties/{id}/unavailable-dates": {
            "get": {
                "description": "Every date covered by a reservation, start and end included, ascending.",
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Dates that can no longer be booked",
                "parameters": [{"type": "integer", "description": "Property id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/reservations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Get a reservation with its customer",
                "parameters": [{"type": "integer", "description": "Reservation id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Change the dates or party size of a reservation",
                "parameters": [
                    {"type": "integer", "description": "Reservation id", "name": "id", "in": "path", "required": true},
                    {"description": "New stay", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "Cancel a reservation",
                "parameters": [{"type": "integer", "description": "Reservation id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ReservationRequest": {
            "type": "object",
            "properties": {
                "startDate": {"type": "string", "example": "2024-06-01"},
                "endDate": {"type": "string", "example": "2024-06-04"},
                "numberOfGuests": {"type": "integer", "example": 2}
            }
        },
        "dto.PropertyRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Home"},
                "price": {"type": "number", "example": 2000},
                "address": {"type": "string", "example": "Oslo Norway"},
                "description": {"type": "string"},
                "guest": {"type": "integer", "example": 4},
                "bed": {"type": "integer"},
                "bedRooms": {"type": "integer"},
                "bathRooms": {"type": "integer"},
                "pTypeId": {"type": "integer", "example": 1},
                "amenityIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "mess": {"type": "string"},
                "error": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Airmetr API",
	Description:      "Property listings and the reservation engine behind them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
