package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Alumni Directory API",
        "description": "Public alumni search and volunteer-moderated record corrections",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "VolunteerToken": {"type": "apiKey", "name": "Authorization", "in": "header", "description": "Bearer <volunteer token>"}
    },
    "tags": [
        {"name": "Search", "description": "Public directory search"},
        {"name": "Update Requests", "description": "Anonymous correction proposals"},
        {"name": "Volunteer", "description": "Moderation of proposals"},
        {"name": "Health", "description": "Liveness and readiness"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Service and database liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Health"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/Health"}}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Not ready"}
                }
            }
        },
        "/api/search": {
            "get": {
                "tags": ["Search"],
                "summary": "Search the alumni directory",
                "description": "All parameters are optional and case-insensitive. Without any usable parameter the result is empty.",
                "parameters": [
                    {"name": "name", "in": "query", "type": "string", "description": "contains"},
                    {"name": "rollNumber", "in": "query", "type": "string", "description": "exact"},
                    {"name": "lastOrganization", "in": "query", "type": "string", "description": "contains"},
                    {"name": "lastPosition", "in": "query", "type": "string", "description": "contains"},
                    {"name": "collegeClubs", "in": "query", "type": "string", "description": "contains"},
                    {"name": "natureOfJob", "in": "query", "type": "string", "description": "exact"},
                    {"name": "country", "in": "query", "type": "string", "description": "exact"},
                    {"name": "city", "in": "query", "type": "string", "description": "word prefix in India or overseas location"},
                    {"name": "yearOfEntry", "in": "query", "type": "integer"},
                    {"name": "programName", "in": "query", "type": "string", "description": "exact"},
                    {"name": "specialization", "in": "query", "type": "string", "description": "exact"},
                    {"name": "page", "in": "query", "type": "integer", "default": 1},
                    {"name": "limit", "in": "query", "type": "integer", "default": 20, "maximum": 50}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SearchResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/update-request": {
            "post": {
                "tags": ["Update Requests"],
                "summary": "Propose a correction to an alumni record",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitUpdateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SubmitUpdateResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Unknown roll number", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/volunteer/update-requests": {
            "get": {
                "tags": ["Volunteer"],
                "summary": "List update requests",
                "security": [{"VolunteerToken": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved", "rejected", "all"], "default": "pending"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UpdateRequestPage"}},
                    "400": {"description": "Invalid status", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/volunteer/update-requests/{id}": {
            "get": {
                "tags": ["Volunteer"],
                "summary": "Get an update request with its field diff",
                "security": [{"VolunteerToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/volunteer/update-requests/{id}/approve": {
            "post": {
                "tags": ["Volunteer"],
                "summary": "Approve and merge an update request",
                "security": [{"VolunteerToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/ReviewDecision"}}
                ],
                "responses": {
                    "200": {"description": "Approved", "schema": {"$ref": "#/definitions/ApproveResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Already processed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/volunteer/update-requests/{id}/reject": {
            "post": {
                "tags": ["Volunteer"],
                "summary": "Reject an update request",
                "security": [{"VolunteerToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/ReviewDecision"}}
                ],
                "responses": {
                    "200": {"description": "Rejected", "schema": {"$ref": "#/definitions/Ack"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Already processed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/volunteer/alumni/{rollNumber}": {
            "get": {
                "tags": ["Volunteer"],
                "summary": "Get the full alumni record",
                "security": [{"VolunteerToken": []}],
                "parameters": [
                    {"name": "rollNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/volunteer/alumni/export": {
            "get": {
                "tags": ["Volunteer"],
                "summary": "Export a filtered directory slice",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"VolunteerToken": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
            }
        },
        "Health": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"type": "string"}
            }
        },
        "AlumniSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "rollNumber": {"type": "string"},
                "yearOfEntry": {"type": "integer"},
                "yearOfGraduation": {"type": "integer"},
                "programName": {"type": "string"},
                "specialization": {"type": "string"},
                "department": {"type": "string"},
                "serialNo": {"type": "string"},
                "lastPosition": {"type": "string"},
                "lastOrganization": {"type": "string"},
                "natureOfJob": {"type": "string"},
                "currentLocationIndia": {"type": "string"},
                "currentOverseasLocation": {"type": "string"},
                "country": {"type": "string"}
            }
        },
        "SearchResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/AlumniSummary"}},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "hasMore": {"type": "boolean"}
            }
        },
        "SubmitUpdateRequest": {
            "type": "object",
            "required": ["rollNumber", "oldData", "newData"],
            "properties": {
                "rollNumber": {"type": "string"},
                "oldData": {"type": "object"},
                "newData": {"type": "object"}
            }
        },
        "SubmitUpdateResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "requestId": {"type": "string"}
            }
        },
        "UpdateRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "rollNumber": {"type": "string"},
                "oldData": {"type": "object"},
                "newData": {"type": "object"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "submittedAt": {"type": "string", "format": "date-time"},
                "reviewedAt": {"type": "string", "format": "date-time"},
                "reviewedBy": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "UpdateRequestPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/UpdateRequest"}},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "hasMore": {"type": "boolean"}
            }
        },
        "ReviewDecision": {
            "type": "object",
            "properties": {
                "notes": {"type": "string", "maxLength": 2000},
                "reviewedBy": {"type": "string", "maxLength": 120}
            }
        },
        "ApproveResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "alumni": {"type": "object"}
            }
        },
        "Ack": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
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
