package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Variant-based timetable lifecycle: feasibility checks, solver-backed generation, selection, commits, manual grid edits, and exports.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Feasibility", "description": "Setup-form supply/demand arithmetic"},
        {"name": "Sessions", "description": "Variant generation and commit lifecycle"},
        {"name": "Editor", "description": "Manual adjustments on the custom grid"},
        {"name": "Exports", "description": "Grid rendering and downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/feasibility/check": {
            "post": {
                "tags": ["Feasibility"],
                "summary": "Check teacher-hour supply against class-hour demand",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeasibilityCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a variant session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Infeasible setup"}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get session state",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/generate": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Generate candidate variants",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/GenerateVariantsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "A generation or commit is already in flight"},
                    "502": {"description": "Solver unavailable"}
                }
            }
        },
        "/sessions/{id}/regenerate": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Discard current candidates and generate a fresh batch",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/GenerateVariantsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Busy or no candidate set yet"}
                }
            }
        },
        "/sessions/{id}/select": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Select one candidate as the working choice",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectVariantRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/commit": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Commit the selected variant as the official timetable",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommitVariantRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Busy, nothing selected, or mismatched variant"}
                }
            }
        },
        "/sessions/{id}/variants/{variantId}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get one candidate with its full grid",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "variantId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/official": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get the committed timetable",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No committed timetable"}
                }
            }
        },
        "/sessions/{id}/editor": {
            "get": {
                "tags": ["Editor"],
                "summary": "Get the editor view for the current mode",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/editor/mode": {
            "put": {
                "tags": ["Editor"],
                "summary": "Switch between the official and custom views",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetViewModeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/editor/move": {
            "post": {
                "tags": ["Editor"],
                "summary": "Move a slot to another cell (occupied targets are overwritten)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Break periods cannot move or be overwritten"}
                }
            }
        },
        "/sessions/{id}/editor/copy": {
            "post": {
                "tags": ["Editor"],
                "summary": "Copy a slot onto the shared clipboard",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CopySlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/editor/paste": {
            "post": {
                "tags": ["Editor"],
                "summary": "Paste the clipboard content into a cell",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PasteSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/editor/delete": {
            "post": {
                "tags": ["Editor"],
                "summary": "Clear one cell of the custom grid",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/editor/reset": {
            "post": {
                "tags": ["Editor"],
                "summary": "Discard custom edits and re-fork from the official grid",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/ResetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/export": {
            "post": {
                "tags": ["Exports"],
                "summary": "Render the currently displayed grid to a downloadable file",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{exportId}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Get export render progress",
                "parameters": [
                    {"name": "exportId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a rendered export via its signed token",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "FeasibilityInput": {
            "type": "object",
            "properties": {
                "teacher_count": {"type": "integer"},
                "max_hours_per_teacher_per_day": {"type": "integer"},
                "working_days_count": {"type": "integer"},
                "branch_count": {"type": "integer"},
                "max_class_hours_per_week": {"type": "integer"}
            }
        },
        "FeasibilityCheckRequest": {
            "type": "object",
            "properties": {
                "input": {"$ref": "#/definitions/FeasibilityInput"}
            }
        },
        "CreateSessionRequest": {
            "type": "object",
            "properties": {
                "institutionId": {"type": "string"},
                "title": {"type": "string"},
                "includeSaturday": {"type": "boolean"},
                "timeRanges": {"type": "array", "items": {"type": "string"}},
                "feasibility": {"$ref": "#/definitions/FeasibilityInput"}
            }
        },
        "GenerateVariantsRequest": {
            "type": "object",
            "properties": {
                "variantCount": {"type": "integer"},
                "constraints": {"type": "object"}
            }
        },
        "SelectVariantRequest": {
            "type": "object",
            "properties": {
                "variantId": {"type": "string"}
            }
        },
        "CommitVariantRequest": {
            "type": "object",
            "properties": {
                "variantId": {"type": "string"}
            }
        },
        "CellRef": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "timeRange": {"type": "string"}
            }
        },
        "MoveSlotRequest": {
            "type": "object",
            "properties": {
                "from": {"$ref": "#/definitions/CellRef"},
                "to": {"$ref": "#/definitions/CellRef"}
            }
        },
        "CopySlotRequest": {
            "type": "object",
            "properties": {
                "from": {"$ref": "#/definitions/CellRef"}
            }
        },
        "PasteSlotRequest": {
            "type": "object",
            "properties": {
                "to": {"$ref": "#/definitions/CellRef"}
            }
        },
        "DeleteSlotRequest": {
            "type": "object",
            "properties": {
                "at": {"$ref": "#/definitions/CellRef"}
            }
        },
        "ResetRequest": {
            "type": "object",
            "properties": {
                "at": {"$ref": "#/definitions/CellRef"}
            }
        },
        "SetViewModeRequest": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["official", "custom"]}
            }
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["pdf", "csv", "xlsx"]},
                "title": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
