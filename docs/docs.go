// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard": {
            "get": {
                "description": "Account cards, total value, combined allocation, recent transactions and insights, converted to the display currency",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/accounts/{kind}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get one account",
                "parameters": [
                    {"enum": ["current", "isa", "sipp"], "type": "string", "description": "Account kind", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AccountResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/accounts/current/spending": {
            "get": {
                "description": "Expenses grouped by transaction category with whole percentages of total spend",
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Current account spending breakdown",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SpendingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/allocations/aggregate": {
            "post": {
                "description": "Merge sub-portfolios, each given as percentages of its own base value, into whole percentages of the combined base",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["allocations"],
                "summary": "Aggregate sub-portfolio allocations",
                "parameters": [
                    {"description": "Sub-portfolios to merge", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AggregateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AggregateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/allocations/aggregate/csv": {
            "post": {
                "description": "CSV columns: portfolio, base_value, category, percentage. Rows with the same portfolio form one sub-portfolio.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["allocations"],
                "summary": "Aggregate allocations from a CSV upload",
                "parameters": [
                    {"type": "file", "description": "Holdings CSV", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AggregateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/fx/rate": {
            "get": {
                "description": "The rate applied to converted amounts and where it came from (live, stale or fallback)",
                "produces": ["application/json"],
                "tags": ["fx"],
                "summary": "Current exchange rate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RateSnapshot"}}
                }
            }
        },
        "/fx/refresh": {
            "post": {
                "description": "Fetch the live rate now. On failure the previous rate stays in use.",
                "produces": ["application/json"],
                "tags": ["fx"],
                "summary": "Refresh the exchange rate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RateSnapshot"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/help/faq": {
            "get": {
                "produces": ["application/json"],
                "tags": ["help"],
                "summary": "Frequently asked questions",
                "parameters": [
                    {"type": "string", "description": "Only this category (case-insensitive)", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FAQResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.Amount": {
            "type": "object",
            "properties": {
                "value": {"type": "string"},
                "currency": {"type": "string"},
                "formatted": {"type": "string"}
            }
        },
        "models.Holding": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "percentage": {"type": "string"}
            }
        },
        "models.SubPortfolio": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "base_value": {"type": "string"},
                "holdings": {"type": "array", "items": {"$ref": "#/definitions/models.Holding"}}
            }
        },
        "models.AggregateRequest": {
            "type": "object",
            "required": ["sub_portfolios"],
            "properties": {
                "sub_portfolios": {"type": "array", "items": {"$ref": "#/definitions/models.SubPortfolio"}}
            }
        },
        "models.AllocationEntry": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "percentage": {"type": "integer"}
            }
        },
        "models.CombinedAllocation": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/models.AllocationEntry"}},
                "combined_base": {"type": "string", "example": "62065.31"}
            }
        },
        "models.ChartSlice": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "label": {"type": "string"},
                "color": {"type": "string"},
                "percentage": {"type": "integer"}
            }
        },
        "models.AggregateResponse": {
            "type": "object",
            "properties": {
                "allocation": {"$ref": "#/definitions/models.CombinedAllocation"},
                "chart": {"type": "array", "items": {"$ref": "#/definitions/models.ChartSlice"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.RateSnapshot": {
            "type": "object",
            "properties": {
                "base": {"type": "string"},
                "quote": {"type": "string"},
                "rate": {"type": "string"},
                "source": {"type": "string", "enum": ["live", "stale", "fallback"]},
                "fetched_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.AccountCard": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "title": {"type": "string"},
                "balance": {"$ref": "#/definitions/models.Amount"},
                "change": {"$ref": "#/definitions/models.Amount"},
                "change_percent": {"type": "string"},
                "is_positive": {"type": "boolean"},
                "link": {"type": "string"}
            }
        },
        "models.TransactionView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "amount": {"type": "string"},
                "type": {"type": "string"},
                "category": {"type": "string"},
                "converted": {"$ref": "#/definitions/models.Amount"},
                "icon": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "models.Insight": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "title": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.DashboardResponse": {
            "type": "object",
            "properties": {
                "accounts": {"type": "array", "items": {"$ref": "#/definitions/models.AccountCard"}},
                "total_value": {"$ref": "#/definitions/models.Amount"},
                "allocation": {"$ref": "#/definitions/models.CombinedAllocation"},
                "chart": {"type": "array", "items": {"$ref": "#/definitions/models.ChartSlice"}},
                "recent_transactions": {"type": "array", "items": {"$ref": "#/definitions/models.TransactionView"}},
                "insights": {"type": "array", "items": {"$ref": "#/definitions/models.Insight"}},
                "rate": {"$ref": "#/definitions/models.RateSnapshot"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.AllowanceView": {
            "type": "object",
            "properties": {
                "used": {"$ref": "#/definitions/models.Amount"},
                "total": {"$ref": "#/definitions/models.Amount"},
                "remaining": {"$ref": "#/definitions/models.Amount"},
                "used_percentage": {"type": "string"}
            }
        },
        "models.AccountResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "name": {"type": "string"},
                "balance": {"$ref": "#/definitions/models.Amount"},
                "change": {"$ref": "#/definitions/models.Amount"},
                "allocation": {"type": "array", "items": {"$ref": "#/definitions/models.ChartSlice"}},
                "sectors": {"type": "array", "items": {"$ref": "#/definitions/models.Holding"}},
                "allowance": {"$ref": "#/definitions/models.AllowanceView"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.TransactionView"}},
                "investments": {"type": "array", "items": {"$ref": "#/definitions/models.InvestmentView"}},
                "performance": {"$ref": "#/definitions/models.PerformanceView"},
                "contributions": {"type": "array", "items": {"$ref": "#/definitions/models.ContributionView"}},
                "projections": {"type": "array", "items": {"$ref": "#/definitions/models.ProjectionView"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.InvestmentView": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "ticker": {"type": "string"},
                "allocation": {"type": "string"},
                "units": {"type": "string"},
                "value": {"$ref": "#/definitions/models.Amount"},
                "change": {"$ref": "#/definitions/models.Amount"},
                "change_percent": {"type": "string"},
                "is_positive": {"type": "boolean"}
            }
        },
        "models.PerformancePoint": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "return": {"type": "string"},
                "benchmark": {"type": "string"}
            }
        },
        "models.PerformanceView": {
            "type": "object",
            "properties": {
                "benchmark": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/models.PerformancePoint"}},
                "cumulative_return": {"type": "string"},
                "cumulative_benchmark": {"type": "string"},
                "outperformance": {"type": "string"}
            }
        },
        "models.ContributionView": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "personal": {"$ref": "#/definitions/models.Amount"},
                "employer": {"$ref": "#/definitions/models.Amount"},
                "total": {"$ref": "#/definitions/models.Amount"}
            }
        },
        "models.ProjectionView": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "pessimistic": {"$ref": "#/definitions/models.Amount"},
                "expected": {"$ref": "#/definitions/models.Amount"},
                "optimistic": {"$ref": "#/definitions/models.Amount"}
            }
        },
        "models.FAQItem": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "answer": {"type": "string"}
            }
        },
        "models.FAQSection": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/models.FAQItem"}}
            }
        },
        "models.FAQResponse": {
            "type": "object",
            "properties": {
                "sections": {"type": "array", "items": {"$ref": "#/definitions/models.FAQSection"}}
            }
        },
        "models.SpendingCategory": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "label": {"type": "string"},
                "color": {"type": "string"},
                "total": {"$ref": "#/definitions/models.Amount"},
                "percentage": {"type": "integer"}
            }
        },
        "models.SpendingResponse": {
            "type": "object",
            "properties": {
                "total": {"$ref": "#/definitions/models.Amount"},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/models.SpendingCategory"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Wealthboard API",
	Description:      "Personal finance dashboard: accounts, combined allocation and currency conversion.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
