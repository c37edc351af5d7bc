// Package docs holds the API document served at /swagger.
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
    "securityDefinitions": {
        "OwnerHeader": {
            "type": "apiKey",
            "name": "X-User-Id",
            "in": "header"
        }
    },
    "security": [{"OwnerHeader": []}],
    "paths": {
        "/users": {"post": {"summary": "Cria um usuário", "tags": ["users"], "responses": {"201": {"description": "Created"}}}},
        "/users/me": {"get": {"summary": "Usuário atual com saldos", "tags": ["users"], "responses": {"200": {"description": "OK"}}}},
        "/accounts": {
            "post": {"summary": "Cria uma conta", "tags": ["accounts"], "responses": {"201": {"description": "Created"}}},
            "get": {"summary": "Lista contas", "tags": ["accounts"], "responses": {"200": {"description": "OK"}}}
        },
        "/accounts/{id}": {
            "get": {"summary": "Busca uma conta", "tags": ["accounts"], "responses": {"200": {"description": "OK"}}},
            "patch": {"summary": "Atualiza uma conta", "tags": ["accounts"], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Remove uma conta sem movimentações", "tags": ["accounts"], "responses": {"200": {"description": "OK"}}}
        },
        "/categories": {
            "post": {"summary": "Cria uma categoria", "tags": ["categories"], "responses": {"201": {"description": "Created"}}},
            "get": {"summary": "Lista categorias com subcategorias", "tags": ["categories"], "responses": {"200": {"description": "OK"}}}
        },
        "/categories/{id}/subcategories": {"post": {"summary": "Cria uma subcategoria", "tags": ["categories"], "responses": {"201": {"description": "Created"}}}},
        "/places": {
            "post": {"summary": "Cria um local", "tags": ["places"], "responses": {"201": {"description": "Created"}}},
            "get": {"summary": "Lista locais", "tags": ["places"], "responses": {"200": {"description": "OK"}}}
        },
        "/goals": {
            "post": {"summary": "Cria uma meta", "tags": ["goals"], "responses": {"201": {"description": "Created"}}},
            "get": {"summary": "Lista metas", "tags": ["goals"], "responses": {"200": {"description": "OK"}}}
        },
        "/expenses": {"post": {"summary": "Registra uma despesa", "tags": ["ledger"], "responses": {"201": {"description": "Created"}, "400": {"description": "VALIDATION_ERROR"}, "422": {"description": "REQUIRED_REFERENCE_MISSING"}}}},
        "/expenses/{id}": {
            "patch": {"summary": "Atualiza uma despesa", "tags": ["ledger"], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Remove uma despesa", "tags": ["ledger"], "responses": {"204": {"description": "No Content"}}}
        },
        "/expenses/bulk": {"post": {"summary": "Registra despesas em lote", "tags": ["ledger"], "responses": {"201": {"description": "Created"}}}},
        "/expenses/bulk-delete": {"post": {"summary": "Remove despesas em lote", "tags": ["ledger"], "responses": {"200": {"description": "OK"}}}},
        "/incomes": {"post": {"summary": "Registra uma receita", "tags": ["ledger"], "responses": {"201": {"description": "Created"}}}},
        "/incomes/{id}": {
            "patch": {"summary": "Atualiza uma receita", "tags": ["ledger"], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Remove uma receita", "tags": ["ledger"], "responses": {"204": {"description": "No Content"}}}
        },
        "/incomes/bulk": {"post": {"summary": "Registra receitas em lote", "tags": ["ledger"], "responses": {"201": {"description": "Created"}}}},
        "/incomes/bulk-delete": {"post": {"summary": "Remove receitas em lote", "tags": ["ledger"], "responses": {"200": {"description": "OK"}}}},
        "/transfers": {"post": {"summary": "Registra uma transferência", "tags": ["ledger"], "responses": {"201": {"description": "Created"}}}},
        "/transfers/{id}": {
            "patch": {"summary": "Atualiza uma transferência", "tags": ["ledger"], "responses": {"200": {"description": "OK"}}},
            "delete": {"summary": "Remove uma transferência", "tags": ["ledger"], "responses": {"204": {"description": "No Content"}}}
        },
        "/transfers/bulk": {"post": {"summary": "Registra transferências em lote", "tags": ["ledger"], "responses": {"201": {"description": "Created"}}}},
        "/transfers/bulk-delete": {"post": {"summary": "Remove transferências em lote", "tags": ["ledger"], "responses": {"200": {"description": "OK"}}}},
        "/transactions": {"get": {"summary": "Extrato unificado paginado", "tags": ["feed"], "responses": {"200": {"description": "OK"}}}},
        "/reconcile": {"post": {"summary": "Confere os totais do usuário", "tags": ["reconcile"], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Lake Ledger API",
	Description:      "Ledger de despesas, receitas e transferências com extrato unificado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
