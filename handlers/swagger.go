package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the back office.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>avtostart back office — Swagger</title>
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

// Minimal OpenAPI document describing the back-office endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "avtostart-backoffice", "version": "v1.0.0" },
  "paths": {
    "/api/documents": {
      "get": { "summary": "List documents grouped by category, or filter by ?category=", "responses": { "200": { "description": "envelope with grouped documents" } } },
      "post": { "summary": "Create a document record", "responses": { "201": { "description": "created document" }, "400": { "description": "validation error" } } }
    },
    "/api/documents/{id}": {
      "get": { "summary": "Get a document by id", "responses": { "200": { "description": "document" }, "404": { "description": "not found" } } },
      "put": { "summary": "Partially update a document", "responses": { "200": { "description": "updated document" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Hard-delete a document", "responses": { "200": { "description": "deleted document state" }, "404": { "description": "not found" } } }
    },
    "/api/documents/search": {
      "get": { "summary": "Case-insensitive substring search over title, description and category", "responses": { "200": { "description": "matching documents" } } }
    },
    "/api/documents/stats": {
      "get": { "summary": "Registry statistics", "responses": { "200": { "description": "totals and per-category counts" } } }
    },
    "/api/documents/{id}/download": {
      "get": { "summary": "Presigned download URL for the attached file", "responses": { "200": { "description": "url" }, "404": { "description": "no attached file" } } }
    },
    "/api/info/basic": {
      "get": { "summary": "Current organizational info", "responses": { "200": { "description": "latest record" }, "404": { "description": "no record yet" } } },
      "put": { "summary": "Update organizational info (appends a history record)", "responses": { "200": { "description": "new current record" } } }
    },
    "/api/info/basic/history": {
      "get": { "summary": "Paginated update history, newest first", "responses": { "200": { "description": "summaries plus pagination meta" } } }
    },
    "/api/vehicles": {
      "get": { "summary": "List training vehicles", "responses": { "200": { "description": "vehicles" } } },
      "post": { "summary": "Add a vehicle", "responses": { "201": { "description": "created vehicle" } } }
    },
    "/api/leads": {
      "post": { "summary": "Submit an enrollment request (sent by email, single attempt)", "responses": { "200": { "description": "lead accepted" }, "500": { "description": "delivery failed" } } }
    }
  }
}`
