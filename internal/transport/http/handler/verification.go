package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/email-verify-api/internal/application/verification"
	"github.com/email-verify-api/internal/domain"
	"github.com/email-verify-api/internal/pkg/validate"
)

// VerificationHandler serves the three purchase-email verification endpoints.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// ValidateEmail handles POST /api/validar-email. Pure existence check,
// no side effects.
func (h *VerificationHandler) ValidateEmail(w http.ResponseWriter, r *http.Request) {
	var req verification.ValidateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: "Missing field", Details: "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: "Missing field", Details: "email is required"})
		return
	}

	isValid, err := h.svc.ValidateEmail(r.Context(), req.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Error: "Database error", Details: err.Error()})
		return
	}

	msg := "email not found"
	if isValid {
		msg = "email is registered"
	}
	writeJSON(w, http.StatusOK, ValidateEmailEnvelope{IsValid: isValid, Message: msg})
}

// SendCode handles POST /api/enviar-codigo-verificacao.
func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req verification.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: "Missing field", Details: "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: "Missing field", Details: "email is required"})
		return
	}

	err := h.svc.SendCode(r.Context(), req.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusBadRequest, SendCodeEnvelope{Success: false, Message: "email not found"})
	case errors.Is(err, domain.ErrDelivery):
		writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Error: "Server error", Details: err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Error: "Database error", Details: err.Error()})
	default:
		writeJSON(w, http.StatusOK, SendCodeEnvelope{Success: true, Message: "verification code sent"})
	}
}

// VerifyCode handles POST /api/verificar-codigo. Wrong, expired and missing
// codes are all a 200 with isCorrect:false — the caller distinguishes
// outcomes via the body, not the status.
func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verification.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: "Missing parameters", Details: "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: "Missing parameters", Details: "email and codigo are required"})
		return
	}

	isCorrect, err := h.svc.VerifyCode(r.Context(), req.Email, req.Codigo)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Error: "Database error", Details: err.Error()})
		return
	}

	if !isCorrect {
		writeJSON(w, http.StatusOK, VerifyCodeEnvelope{IsCorrect: false, Message: "incorrect or expired code"})
		return
	}
	writeJSON(w, http.StatusOK, VerifyCodeEnvelope{IsCorrect: true, Message: "code verified"})
}
