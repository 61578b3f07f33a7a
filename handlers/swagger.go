package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the notes API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>notes API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "notes", "version": "v0.1.0" },
  "components": {
    "parameters": {
      "identity": { "name": "X-User-Id", "in": "header", "required": true, "schema": {"type":"string"}, "description": "caller identity set by the auth gateway" },
      "id": { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} }
    },
    "schemas": {
      "Note": {"type":"object","properties":{"id":{"type":"string"},"userId":{"type":"string"},"title":{"type":"string","maxLength":200},"content":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}},"createdAt":{"type":"string","format":"date-time"},"updatedAt":{"type":"string","format":"date-time"}}},
      "Error": {"type":"object","properties":{"error":{"type":"string"},"details":{"type":"array","items":{"type":"object","properties":{"field":{"type":"string"},"message":{"type":"string"}}}}}}
    }
  },
  "paths": {
    "/api/notes": {
      "get": { "summary": "List the caller's notes, oldest updated first", "parameters": [{"$ref":"#/components/parameters/identity"}], "responses": { "200": { "description": "{notes: Note[]}" }, "401": { "description": "no identity" } } },
      "post": {
        "summary": "Create a note",
        "parameters": [{"$ref":"#/components/parameters/identity"}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title"],"properties":{"title":{"type":"string","minLength":1,"maxLength":200},"content":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "201": { "description": "{note: Note}" }, "400": { "description": "validation failed" }, "401": { "description": "no identity" } }
      }
    },
    "/api/notes/{id}": {
      "get": { "summary": "Fetch one note", "parameters": [{"$ref":"#/components/parameters/identity"},{"$ref":"#/components/parameters/id"}], "responses": { "200": { "description": "{note: Note}" }, "404": { "description": "missing or not owned" } } },
      "patch": {
        "summary": "Partially update a note",
        "parameters": [{"$ref":"#/components/parameters/identity"},{"$ref":"#/components/parameters/id"}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string","minLength":1,"maxLength":200},"content":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "200": { "description": "{note: Note}" }, "400": { "description": "validation failed" }, "404": { "description": "missing or not owned" } }
      },
      "delete": { "summary": "Delete a note", "parameters": [{"$ref":"#/components/parameters/identity"},{"$ref":"#/components/parameters/id"}], "responses": { "200": { "description": "{message}" }, "404": { "description": "missing or not owned" } } }
    },
    "/api/notes/ai/summarize": {
      "post": { "summary": "Summarize text in 2-3 sentences", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["content"],"properties":{"content":{"type":"string"}}}}}}, "responses": { "200": { "description": "{summary}" }, "400": { "description": "empty content" }, "500": { "description": "provider failure" } } }
    },
    "/api/notes/ai/fix-grammar": {
      "post": { "summary": "Fix grammar and spelling", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["content"],"properties":{"content":{"type":"string"}}}}}}, "responses": { "200": { "description": "{fixedContent, corrections}" }, "400": { "description": "empty content" }, "500": { "description": "provider failure" } } }
    },
    "/api/notes/ai/auto-tag": {
      "post": { "summary": "Suggest up to 5 tags", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string"},"content":{"type":"string"}}}}}}, "responses": { "200": { "description": "{tags}" }, "400": { "description": "empty title and content" }, "500": { "description": "provider failure" } } }
    },
    "/health": { "get": { "summary": "Liveness", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness", "responses": { "200": { "description": "ready" }, "503": { "description": "store unavailable" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
