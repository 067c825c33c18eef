// Package docs holds the OpenAPI description served at /swagger.
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
        "/intake/extract": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Find VINs in pasted manifest text and infer brand, model, year, color and shipment details",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "intake"
                ],
                "summary": "Extract draft vehicles from manifest text",
                "parameters": [
                    {
                        "description": "Manifest text",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.ExtractRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Extracted batch",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/extract.Batch"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    },
                    "413": {
                        "description": "Manifest too large",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    },
                    "422": {
                        "description": "No valid VINs found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/intake/upload": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "intake"
                ],
                "summary": "Upload and extract a manifest document",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Manifest document (.txt, .csv, .tsv)",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Category for records without one",
                        "name": "default_category",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Extracted batch and archived document key",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.UploadResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Missing or unsupported file",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    },
                    "413": {
                        "description": "Manifest too large",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    },
                    "422": {
                        "description": "No valid VINs found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/intake/commit": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "intake"
                ],
                "summary": "Commit reviewed drafts as inventory",
                "parameters": [
                    {
                        "description": "Reviewed drafts",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CommitRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created cars",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/domain.Car"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid VIN, empty batch or over-long field",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    },
                    "409": {
                        "description": "VIN already in inventory",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/intake/export": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "text/csv"
                ],
                "tags": [
                    "intake"
                ],
                "summary": "Export drafts as CSV",
                "parameters": [
                    {
                        "description": "Drafts to export",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.ExportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "CSV spreadsheet",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        },
        "/vehicles": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "vehicles"
                ],
                "summary": "List inventory",
                "parameters": [
                    {
                        "type": "integer",
                        "default": 0,
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 20,
                        "description": "Limit (max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Inventory page",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/domain.Car"
                                            }
                                        },
                                        "meta": {
                                            "$ref": "#/definitions/handler.PagMeta"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/vehicles/{identifier}/view": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Merge inventory, repair history, test drives, unified records and location mirrors for one vehicle",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "vehicles"
                ],
                "summary": "Comprehensive vehicle view",
                "parameters": [
                    {
                        "type": "string",
                        "description": "VIN, car code, alias or id",
                        "name": "identifier",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Merged view",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/handler.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "object"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "No source knows the vehicle",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponseBody"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.DraftVehicleRecord": {
            "type": "object",
            "properties": {
                "vin": {
                    "type": "string"
                },
                "brand": {
                    "type": "string"
                },
                "model": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                },
                "color": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "shipment_code": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "shipment": {
                    "$ref": "#/definitions/domain.GlobalShipmentContext"
                }
            }
        },
        "domain.GlobalShipmentContext": {
            "type": "object",
            "properties": {
                "supplier": {
                    "type": "string"
                },
                "order_reference": {
                    "type": "string"
                },
                "tracking_number": {
                    "type": "string"
                },
                "shipping_company": {
                    "type": "string"
                },
                "estimated_arrival": {
                    "type": "string"
                }
            }
        },
        "domain.Car": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "vin_number": {
                    "type": "string"
                },
                "car_code": {
                    "type": "string"
                },
                "brand": {
                    "type": "string"
                },
                "model": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "current_location": {
                    "type": "string"
                },
                "shipment_code": {
                    "type": "string"
                },
                "supplier": {
                    "type": "string"
                },
                "order_reference": {
                    "type": "string"
                },
                "source_document_key": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "extract.Batch": {
            "type": "object",
            "properties": {
                "vins": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.DraftVehicleRecord"
                    }
                },
                "shipment": {
                    "$ref": "#/definitions/domain.GlobalShipmentContext"
                }
            }
        },
        "service.UploadResult": {
            "type": "object",
            "properties": {
                "vins": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.DraftVehicleRecord"
                    }
                },
                "shipment": {
                    "$ref": "#/definitions/domain.GlobalShipmentContext"
                },
                "document_key": {
                    "type": "string"
                }
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handler.APIResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {},
                "error": {
                    "$ref": "#/definitions/handler.APIError"
                },
                "meta": {
                    "$ref": "#/definitions/handler.PagMeta"
                }
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean",
                    "example": false
                },
                "error": {
                    "$ref": "#/definitions/handler.APIError"
                }
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                }
            }
        },
        "handler.ExtractRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                },
                "default_category": {
                    "type": "string"
                }
            },
            "required": [
                "text"
            ]
        },
        "handler.CommitRequest": {
            "type": "object",
            "properties": {
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.DraftVehicleRecord"
                    }
                },
                "shipment": {
                    "$ref": "#/definitions/domain.GlobalShipmentContext"
                },
                "document_key": {
                    "type": "string"
                }
            },
            "required": [
                "records"
            ]
        },
        "handler.ExportRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.DraftVehicleRecord"
                    }
                },
                "shipment": {
                    "$ref": "#/definitions/domain.GlobalShipmentContext"
                }
            },
            "required": [
                "records"
            ]
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "DealerOps API",
	Description:      "Manifest intake and comprehensive vehicle views for dealership inventory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
