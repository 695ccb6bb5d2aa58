package handler

import "net/http"

// OpenAPIHandler serves the static schema document the external agent uses
// to discover the API. Pure data — built once at construction time.
type OpenAPIHandler struct {
	doc map[string]interface{}
}

func NewOpenAPIHandler(publicBaseURL string) *OpenAPIHandler {
	return &OpenAPIHandler{doc: buildDoc(publicBaseURL)}
}

func (h *OpenAPIHandler) Get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.doc)
}

func buildDoc(publicBaseURL string) map[string]interface{} {
	emailBody := requestBody(map[string]interface{}{
		"type":     "object",
		"required": []string{"email"},
		"properties": map[string]interface{}{
			"email": map[string]interface{}{"type": "string", "format": "email"},
		},
	})

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Purchase Email Verification API",
			"description": "Validates purchaser emails and issues short-lived one-time verification codes by email.",
			"version":     "1.0.0",
		},
		"servers": []map[string]interface{}{
			{"url": publicBaseURL},
		},
		"components": map[string]interface{}{
			"securitySchemes": map[string]interface{}{
				"bearerAuth": map[string]interface{}{
					"type":   "http",
					"scheme": "bearer",
				},
			},
		},
		"security": []map[string]interface{}{
			{"bearerAuth": []string{}},
		},
		"paths": map[string]interface{}{
			"/api/validar-email": map[string]interface{}{
				"post": map[string]interface{}{
					"operationId": "validarEmail",
					"summary":     "Check whether a purchaser account exists for an email",
					"requestBody": emailBody,
					"responses": map[string]interface{}{
						"200": jsonResponse("Existence check result", map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"isValid": map[string]interface{}{"type": "boolean"},
								"message": map[string]interface{}{"type": "string"},
							},
						}),
					},
				},
			},
			"/api/enviar-codigo-verificacao": map[string]interface{}{
				"post": map[string]interface{}{
					"operationId": "enviarCodigoVerificacao",
					"summary":     "Generate a one-time code and deliver it by email",
					"requestBody": emailBody,
					"responses": map[string]interface{}{
						"200": jsonResponse("Code generated and sent", map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"success": map[string]interface{}{"type": "boolean"},
								"message": map[string]interface{}{"type": "string"},
							},
						}),
					},
				},
			},
			"/api/verificar-codigo": map[string]interface{}{
				"post": map[string]interface{}{
					"operationId": "verificarCodigo",
					"summary":     "Verify a submitted code (single-use, 10-minute expiry)",
					"requestBody": requestBody(map[string]interface{}{
						"type":     "object",
						"required": []string{"email", "codigo"},
						"properties": map[string]interface{}{
							"email":  map[string]interface{}{"type": "string", "format": "email"},
							"codigo": map[string]interface{}{"type": "string"},
						},
					}),
					"responses": map[string]interface{}{
						"200": jsonResponse("Verification result", map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"isCorrect": map[string]interface{}{"type": "boolean"},
								"message":   map[string]interface{}{"type": "string"},
							},
						}),
					},
				},
			},
		},
	}
}

func requestBody(schema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"required": true,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{"schema": schema},
		},
	}
}

func jsonResponse(description string, schema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{"schema": schema},
		},
	}
}
