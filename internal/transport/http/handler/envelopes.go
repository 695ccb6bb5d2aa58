package handler

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the generic failure wrapper for 400/500 responses.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageEnvelope wraps plain informational responses.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ValidateEmailEnvelope is the 200 body of /api/validar-email.
type ValidateEmailEnvelope struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// SendCodeEnvelope is the 200/400 body of /api/enviar-codigo-verificacao.
type SendCodeEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyCodeEnvelope is the 200 body of /api/verificar-codigo.
type VerifyCodeEnvelope struct {
	IsCorrect bool   `json:"isCorrect"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
