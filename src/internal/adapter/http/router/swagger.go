package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func registerSwaggerRoutes(r chi.Router) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	r.Get("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	r.Get("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Ledger Engine API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Ledger Engine API",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "basicAuth": {"type": "http", "scheme": "basic"}
    },
    "schemas": {
      "AmountRequest": {
        "type": "object",
        "required": ["amount"],
        "properties": {"amount": {"type": "string", "example": "100.00"}}
      },
      "CreateAccountRequest": {
        "type": "object",
        "required": ["firstName", "lastName", "initialDeposit"],
        "properties": {
          "firstName": {"type": "string"},
          "lastName": {"type": "string"},
          "initialDeposit": {"type": "string", "example": "50.00"}
        }
      },
      "TransferRequest": {
        "type": "object",
        "required": ["fromAccountNumber", "toAccountNumber", "amount"],
        "properties": {
          "fromAccountNumber": {"type": "string"},
          "toAccountNumber": {"type": "string"},
          "amount": {"type": "string"}
        }
      },
      "UpdateStatusRequest": {
        "type": "object",
        "required": ["action"],
        "properties": {
          "action": {"type": "string", "enum": ["FREEZE", "UNFREEZE"]},
          "managerId": {"type": "string"}
        }
      },
      "PasswordRequest": {
        "type": "object",
        "properties": {"password": {}}
      }
    }
  },
  "paths": {
    "/health": {"get": {"summary": "Liveness", "responses": {"200": {"description": "OK"}}}},
    "/accounts": {
      "get": {"summary": "List accounts", "responses": {"200": {"description": "OK"}}},
      "post": {
        "summary": "Open an account",
        "security": [{"basicAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateAccountRequest"}}}},
        "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}}
      }
    },
    "/accounts/{accountNumber}": {
      "get": {"summary": "Get an account", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
    },
    "/accounts/{accountNumber}/deposit": {
      "post": {
        "summary": "Deposit",
        "security": [{"basicAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/AmountRequest"}}}},
        "responses": {"200": {"description": "OK"}, "423": {"description": "Account frozen"}}
      }
    },
    "/accounts/{accountNumber}/withdraw": {
      "post": {
        "summary": "Withdraw within the daily limit",
        "security": [{"basicAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/AmountRequest"}}}},
        "responses": {"200": {"description": "OK"}, "422": {"description": "Daily limit exceeded"}, "423": {"description": "Account frozen"}}
      }
    },
    "/accounts/{accountNumber}/interest": {
      "post": {"summary": "Accrue one interest period", "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK"}}}
    },
    "/accounts/{accountNumber}/transactions": {
      "get": {
        "summary": "Transactions in range",
        "parameters": [
          {"name": "startDate", "in": "query", "schema": {"type": "string"}},
          {"name": "endDate", "in": "query", "schema": {"type": "string"}},
          {"name": "type", "in": "query", "schema": {"type": "string"}}
        ],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid date"}}
      }
    },
    "/accounts/{accountNumber}/status": {
      "post": {
        "summary": "Freeze or unfreeze",
        "security": [{"basicAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/UpdateStatusRequest"}}}},
        "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}}
      }
    },
    "/accounts/{accountNumber}/activity": {
      "get": {"summary": "Suspicious activity report", "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK"}}}
    },
    "/accounts/{accountNumber}/password": {
      "post": {
        "summary": "Set account password",
        "security": [{"basicAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/PasswordRequest"}}}},
        "responses": {"200": {"description": "OK"}, "400": {"description": "Password too weak"}}
      }
    },
    "/passwords/validate": {
      "post": {
        "summary": "Check password strength",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/PasswordRequest"}}}},
        "responses": {"200": {"description": "OK"}}
      }
    },
    "/transfers": {
      "post": {
        "summary": "Transfer between accounts",
        "security": [{"basicAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransferRequest"}}}},
        "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "404": {"description": "Not found"}, "423": {"description": "Account frozen"}}
      }
    }
  }
}`
