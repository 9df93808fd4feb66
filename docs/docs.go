// Package docs registers the OpenAPI description of the storefront API with
// swag. Regenerate with `swag init -g cmd/diamante/main.go` after changing the
// handler annotations.
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
        "/api/categories": {
            "get": {"produces": ["application/json"], "tags": ["catalog"], "summary": "List catalog categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}}}}
        },
        "/api/categories/{id}/subcategories": {
            "get": {"produces": ["application/json"], "tags": ["catalog"], "summary": "List the subcategories of a category",
                "parameters": [{"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SubCategory"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/products": {
            "get": {"produces": ["application/json"], "tags": ["catalog"], "summary": "Filter and paginate products",
                "parameters": [
                    {"type": "string", "description": "Category ID", "name": "category", "in": "query"},
                    {"type": "string", "description": "Subcategory ID", "name": "subcategory", "in": "query"},
                    {"type": "string", "description": "Search by name or tag, accent insensitive", "name": "q", "in": "query"},
                    {"type": "integer", "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "Limit for pagination", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductsSearchResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.ValidationError"}}}}}
        },
        "/api/products/{id}": {
            "get": {"produces": ["application/json"], "tags": ["catalog"], "summary": "Get product by ID",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/cart": {
            "get": {"produces": ["application/json"], "tags": ["cart"], "summary": "Get the session cart",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}}}},
            "delete": {"tags": ["cart"], "summary": "Empty the cart",
                "responses": {"204": {"description": "Cart cleared"}}}
        },
        "/api/cart/items": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["cart"], "summary": "Add one unit of a product to the cart",
                "parameters": [{"description": "Product to add", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AddCartItemRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/cart/items/{id}": {
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["cart"], "summary": "Set the quantity of a cart item",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"description": "New quantity", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateCartItemRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "delete": {"produces": ["application/json"], "tags": ["cart"], "summary": "Remove a product from the cart",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}}}}
        },
        "/api/orders": {
            "post": {"produces": ["application/json"], "tags": ["orders"], "summary": "Place an order with the session cart",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Receipt"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/seo/products/{id}": {
            "get": {"produces": ["application/json"], "tags": ["seo"], "summary": "SEO payload of a product page",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}}
        },
        "/api/seo/categories/{id}": {
            "get": {"produces": ["application/json"], "tags": ["seo"], "summary": "SEO payload of a category page",
                "parameters": [{"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}}
        },
        "/api/seo/organization": {
            "get": {"produces": ["application/json"], "tags": ["seo"], "summary": "Organization JSON-LD",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}}
        },
        "/api/seo/local-business": {
            "get": {"produces": ["application/json"], "tags": ["seo"], "summary": "LocalBusiness JSON-LD",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}}
        },
        "/healthz": {
            "get": {"produces": ["application/json"], "tags": ["system"], "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}}}
        }
    },
    "definitions": {
        "models.Category": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"},
            "image": {"type": "string"}, "og_image": {"type": "string"}}},
        "models.SubCategory": {"type": "object", "properties": {
            "id": {"type": "string"}, "category_id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}}},
        "models.Product": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "category_id": {"type": "string"},
            "subcategory_id": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"},
            "price_label": {"type": "string"}, "tag": {"type": "string"}, "image": {"type": "string"},
            "og_image": {"type": "string"}, "og_title": {"type": "string"}, "og_description": {"type": "string"}}},
        "models.CartItem": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "price": {"type": "number"}, "quantity": {"type": "integer"}}},
        "cart.Cart": {"type": "object", "properties": {
            "items": {"type": "array", "items": {"$ref": "#/definitions/models.CartItem"}},
            "total_items": {"type": "integer"}, "total_price": {"type": "number"}}},
        "order.Receipt": {"type": "object", "properties": {
            "order_id": {"type": "string"},
            "items": {"type": "array", "items": {"$ref": "#/definitions/models.CartItem"}},
            "total_items": {"type": "integer"}, "total_price": {"type": "number"}, "placed_at": {"type": "string"}}},
        "handlers.AddCartItemRequest": {"type": "object", "properties": {"product_id": {"type": "string"}}},
        "handlers.UpdateCartItemRequest": {"type": "object", "properties": {"quantity": {"type": "integer"}}},
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handlers.ValidationError": {"type": "object", "properties": {"field": {"type": "string"}, "description": {"type": "string"}}},
        "handlers.Meta": {"type": "object", "properties": {"total_count": {"type": "integer"}}},
        "handlers.ProductsSearchResult": {"type": "object", "properties": {
            "data": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
            "meta": {"$ref": "#/definitions/handlers.Meta"}}},
        "handlers.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "products": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pinturas Diamante Catalog API",
	Description:      "Catalog, cart, order and SEO endpoints of the Pinturas Diamante storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
