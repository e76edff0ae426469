package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r *gin.Engine) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>codebin — Swagger</title>
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

// Minimal OpenAPI document describing the public surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "codebin", "version": "v0.1.0" },
  "paths": {
    "/auth/login": {
      "post": { "summary": "Issue access and refresh tokens for a user", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"user_id":{"type":"string"}}}}}}, "responses": { "200": { "description": "tokens returned" }, "401": { "description": "authentication failed" } } }
    },
    "/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "responses": { "200": { "description": "logged out" } } }
    },
    "/users": {
      "get": { "summary": "List users", "responses": { "200": { "description": "list of users" } } },
      "post": { "summary": "Create user", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"name":{"type":"string"},"age":{"type":"integer"},"country":{"type":"string"}}}}}}, "responses": { "201": { "description": "created user" }, "400": { "description": "validation error" } } }
    },
    "/users/{id}": {
      "get": { "summary": "Get user", "responses": { "200": { "description": "user" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Update user (partial)", "responses": { "200": { "description": "confirmation" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete user", "responses": { "200": { "description": "confirmation" }, "404": { "description": "not found" } } }
    },
    "/codes": {
      "get": { "summary": "List codes", "responses": { "200": { "description": "list of codes" }, "401": { "description": "authentication required" } } },
      "post": { "summary": "Create code owned by the caller", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"language":{"type":"string"},"body":{"type":"string"}}}}}}, "responses": { "201": { "description": "created code" } } }
    },
    "/codes/{id}": {
      "get": { "summary": "Get code", "responses": { "200": { "description": "code" }, "403": { "description": "forbidden" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Update code (partial)", "responses": { "200": { "description": "confirmation" }, "403": { "description": "forbidden" } } },
      "delete": { "summary": "Delete code", "responses": { "200": { "description": "confirmation" }, "403": { "description": "forbidden" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
