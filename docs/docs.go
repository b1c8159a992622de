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
        "/api/v1/commute/report": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Commute"],
                "summary": "Построить отчёт о поездке (GET)",
                "parameters": [
                    {"type": "string", "example": "BR76PT", "description": "Почтовый индекс отправления", "name": "origin_postcode", "in": "query", "required": true},
                    {"type": "string", "example": "SW1W 0DT", "description": "Адрес назначения", "name": "destination_address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Commute"],
                "summary": "Построить отчёт о поездке",
                "parameters": [
                    {"description": "Индекс отправления и адрес назначения", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CommuteReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/commute/reports/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Commute"],
                "summary": "Получить отчёт из архива",
                "parameters": [
                    {"type": "string", "description": "ID отчёта (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Проверка состояния сервиса",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CommuteReportRequest": {
            "type": "object",
            "required": ["destination_address", "origin_postcode"],
            "properties": {
                "destination_address": {"type": "string", "maxLength": 256},
                "origin_postcode": {"type": "string", "maxLength": 16}
            }
        },
        "dto.CommuteReportResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "report": {"$ref": "#/definitions/domain.CommuteReport"}
            }
        },
        "domain.Coordinate": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "domain.CommuteInfo": {
            "type": "object",
            "properties": {
                "duration_text": {"type": "string"},
                "transit_leg_count": {"type": "integer"}
            }
        },
        "domain.PlaceOfInterest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "coordinate": {"$ref": "#/definitions/domain.Coordinate"},
                "category": {"type": "string", "enum": ["station", "primary_school"]},
                "walking_distance": {"type": "string"}
            }
        },
        "domain.CommuteReport": {
            "type": "object",
            "properties": {
                "origin_resolved": {"type": "boolean"},
                "origin": {"$ref": "#/definitions/domain.Coordinate"},
                "destination_address": {"type": "string"},
                "commute": {"$ref": "#/definitions/domain.CommuteInfo"},
                "stations": {"type": "array", "items": {"$ref": "#/definitions/domain.PlaceOfInterest"}},
                "primary_schools": {"type": "array", "items": {"$ref": "#/definitions/domain.PlaceOfInterest"}}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "request_id": {"type": "string"},
                "time_ms": {"type": "number"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/dto.CommuteReportResponse"},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Commute Report Service API",
	Description:      "Отчёт о поездке: время в пути, станции и начальные школы рядом с точкой отправления",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
