package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the journal service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
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
    <title>cura-journal - Swagger</title>
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

// Minimal OpenAPI document describing the journal service endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "cura-journal", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Entry": { "type": "object", "properties": {
        "text": { "type": "string" },
        "mood": { "type": "integer", "minimum": 0, "maximum": 4 },
        "rating": { "type": "integer", "minimum": 0, "maximum": 10 },
        "date": { "type": "string", "format": "date-time" } } }
    }
  },
  "paths": {
    "/api/journal": {
      "post": {
        "summary": "Append a journal entry",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["text","mood","rating"],"properties":{"text":{"type":"string"},"mood":{"type":"integer"},"rating":{"type":"integer"}}}}}},
        "responses": { "201": { "description": "entry created" }, "400": { "description": "validation failed" }, "503": { "description": "storage unavailable" } }
      },
      "get": {
        "summary": "List entries newest first",
        "parameters": [ { "name": "limit", "in": "query", "schema": { "type": "integer", "minimum": 1 } } ],
        "responses": { "200": { "description": "entries" }, "503": { "description": "storage unavailable" } }
      }
    },
    "/api/journal/moods": { "get": { "summary": "Mood codes and labels", "responses": { "200": { "description": "moods" } } } },
    "/journal": { "get": { "summary": "Rendered HTML entry list", "responses": { "200": { "description": "text/html fragment" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
