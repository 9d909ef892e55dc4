package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the
// inventory service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>stockroom — Swagger</title>
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

// Minimal OpenAPI document describing the products and orders endpoints.
// Every endpoint except /health expects the X-API-Key header.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "stockroom", "version": "v0.1.0" },
  "components": { "securitySchemes": { "ApiKeyAuth": { "type": "apiKey", "in": "header", "name": "X-API-Key" } } },
  "security": [ { "ApiKeyAuth": [] } ],
  "paths": {
    "/products": {
      "get": { "summary": "List products", "responses": { "200": { "description": "array of products" } } },
      "post": {
        "summary": "Create a product",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","price"],"properties":{"id":{"type":"string"},"name":{"type":"string"},"price":{"type":"number"}}}}}},
        "responses": { "201": { "description": "created product" }, "400": { "description": "missing/invalid field or duplicate id" } }
      }
    },
    "/products/{id}": {
      "get": { "summary": "Get a product", "responses": { "200": { "description": "product" }, "404": { "description": "unknown id" } } },
      "put": { "summary": "Update a product", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"price":{"type":"number"}}}}}}, "responses": { "200": { "description": "updated product" }, "400": { "description": "invalid price" }, "404": { "description": "unknown id" } } },
      "delete": { "summary": "Delete a product and prune its order items", "responses": { "200": { "description": "{deleted: id}" }, "404": { "description": "unknown id" } } }
    },
    "/orders": {
      "get": { "summary": "List orders", "responses": { "200": { "description": "array of orders" } } },
      "post": {
        "summary": "Create an order",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["customer","items"],"properties":{"id":{"type":"string"},"customer":{"type":"string"},"status":{"type":"string"},"items":{"type":"array","items":{"type":"object","properties":{"productId":{"type":"string"},"qty":{"type":"integer"}}}}}}}}},
        "responses": { "201": { "description": "created order" }, "400": { "description": "validation failure" } }
      }
    },
    "/orders/{id}": {
      "get": { "summary": "Get an order", "responses": { "200": { "description": "order" }, "404": { "description": "unknown id" } } },
      "put": { "summary": "Update an order", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"status":{"type":"string"},"customer":{"type":"string"},"items":{"type":"array"}}}}}}, "responses": { "200": { "description": "updated order" }, "400": { "description": "validation failure" }, "404": { "description": "unknown id" } } },
      "delete": { "summary": "Delete an order", "responses": { "200": { "description": "{deleted: id}" }, "404": { "description": "unknown id" } } }
    },
    "/health": { "get": { "summary": "Liveness check (no credential)", "security": [], "responses": { "200": { "description": "status payload" } } } }
  }
}`
