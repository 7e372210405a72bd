package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Aula API",
        "description": "Student roster and weather proxy for the classroom frontend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student roster"},
        {"name": "Weather", "description": "OpenWeatherMap proxy"},
        {"name": "Health", "description": "Liveness"}
    ],
    "paths": {
        "/api/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Health"}}
                }
            }
        },
        "/api/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "description": "Returns every student, most recently created first.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/students/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export student roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/weather": {
            "get": {
                "tags": ["Weather"],
                "summary": "Current weather",
                "description": "Provider errors are relayed with their original status and body.",
                "parameters": [
                    {"name": "city", "in": "query", "type": "string", "default": "Posadas"},
                    {"name": "country", "in": "query", "type": "string", "default": "AR"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WeatherSnapshot"}},
                    "500": {"description": "Missing API key or fetch failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "Health": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "apellido": {"type": "string"},
                "materia": {"type": "string"},
                "anio": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["nombre", "apellido", "materia", "anio"],
            "properties": {
                "nombre": {"type": "string", "example": "Ana"},
                "apellido": {"type": "string", "example": "Gómez"},
                "materia": {"type": "string", "example": "Física"},
                "anio": {"type": "integer", "example": 2024}
            }
        },
        "WeatherSnapshot": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"},
                "temp": {"type": "number"},
                "feels_like": {"type": "number"},
                "humidity": {"type": "number"},
                "weather": {"type": "string"},
                "icon": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
