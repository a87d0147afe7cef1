package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Store Pulse API",
    "description": "Daily sales import, week-over-week KPIs and AI-written store reports",
    "version": "1.0"
  },
  "basePath": "/",
  "securityDefinitions": {
    "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
  },
  "paths": {
    "/healthz": {
      "get": {"tags": ["health"], "summary": "Liveness and database check", "responses": {"200": {"description": "ok"}, "503": {"description": "database unavailable"}}}
    },
    "/api/v1/stores/{storeId}/sales/upload": {
      "post": {
        "tags": ["sales"], "summary": "Import daily sales from a CSV file", "security": [{"BearerAuth": []}],
        "consumes": ["multipart/form-data"],
        "parameters": [
          {"name": "storeId", "in": "path", "required": true, "type": "string"},
          {"name": "file", "in": "formData", "required": true, "type": "file"}
        ],
        "responses": {"200": {"description": "imported"}, "400": {"description": "validation errors"}, "404": {"description": "store not found"}}
      }
    },
    "/api/v1/stores/{storeId}/sales": {
      "get": {
        "tags": ["sales"], "summary": "List daily sales, newest first", "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "storeId", "in": "path", "required": true, "type": "string"},
          {"name": "start_date", "in": "query", "type": "string"},
          {"name": "end_date", "in": "query", "type": "string"},
          {"name": "limit", "in": "query", "type": "integer"}
        ],
        "responses": {"200": {"description": "sales"}, "404": {"description": "store not found"}}
      }
    },
    "/api/v1/stores/{storeId}/dashboard": {
      "get": {
        "tags": ["dashboard"], "summary": "Week-over-week KPIs", "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "storeId", "in": "path", "required": true, "type": "string"},
          {"name": "date", "in": "query", "type": "string"}
        ],
        "responses": {"200": {"description": "dashboard"}, "404": {"description": "store not found"}}
      }
    },
    "/api/v1/stores/{storeId}/reports/generate": {
      "post": {
        "tags": ["reports"], "summary": "Generate an AI report for the trailing period", "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "storeId", "in": "path", "required": true, "type": "string"},
          {"name": "body", "in": "body", "schema": {"type": "object", "properties": {"period_days": {"type": "integer"}}}}
        ],
        "responses": {"201": {"description": "generated"}, "400": {"description": "no data or invalid period"}, "503": {"description": "AI service temporarily unavailable"}}
      }
    },
    "/api/v1/stores/{storeId}/reports": {
      "get": {
        "tags": ["reports"], "summary": "List the 20 most recent reports", "security": [{"BearerAuth": []}],
        "parameters": [{"name": "storeId", "in": "path", "required": true, "type": "string"}],
        "responses": {"200": {"description": "reports"}, "404": {"description": "store not found"}}
      }
    },
    "/api/v1/stores/{storeId}/reports/{reportId}": {
      "get": {
        "tags": ["reports"], "summary": "Fetch one report with content", "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "storeId", "in": "path", "required": true, "type": "string"},
          {"name": "reportId", "in": "path", "required": true, "type": "string"}
        ],
        "responses": {"200": {"description": "report"}, "404": {"description": "report not found"}}
      }
    },
    "/api/v1/stores/{storeId}/reports/{reportId}/pdf": {
      "get": {
        "tags": ["reports"], "summary": "Download a report as PDF", "security": [{"BearerAuth": []}],
        "produces": ["application/pdf"],
        "parameters": [
          {"name": "storeId", "in": "path", "required": true, "type": "string"},
          {"name": "reportId", "in": "path", "required": true, "type": "string"}
        ],
        "responses": {"200": {"description": "pdf file"}, "400": {"description": "report content is empty"}, "404": {"description": "report not found"}}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
