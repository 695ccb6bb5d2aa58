package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/email-verify-api/internal/domain"
	pkgcode "github.com/email-verify-api/internal/pkg/code"
)

// codeTTL is how long an emitted code stays valid.
const codeTTL = 10 * time.Minute

// ValidateEmailRequest is the body of POST /api/validar-email.
type ValidateEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

// SendCodeRequest is the body of POST /api/enviar-codigo-verificacao.
type SendCodeRequest struct {
	Email string `json:"email" validate:"required"`
}

// VerifyCodeRequest is the body of POST /api/verificar-codigo.
type VerifyCodeRequest struct {
	Email  string `json:"email" validate:"required"`
	Codigo string `json:"codigo" validate:"required"`
}

// Directory answers whether a purchaser account exists for an email.
type Directory interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// CodeStore persists outstanding verification codes keyed by email.
// Put is an upsert; Get returns domain.ErrNotFound for absent rows.
type CodeStore interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, email string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, email string) error
}

// Mailer delivers the code out of band.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

type Service interface {
	// ValidateEmail mirrors the directory existence check. No side effects.
	ValidateEmail(ctx context.Context, email string) (bool, error)
	// SendCode re-checks existence, then generates, persists and emails a
	// fresh code. Returns domain.ErrNotFound (wrapped) for unknown emails
	// and domain.ErrDelivery (wrapped) when the mail transport fails after
	// the code was persisted.
	SendCode(ctx context.Context, email string) error
	// VerifyCode compares the submitted code case-insensitively against the
	// stored one. Absent, expired and mismatched codes are all (false, nil);
	// a match deletes the row so the code is single-use.
	VerifyCode(ctx context.Context, email, submitted string) (bool, error)
}

// ServiceDeps bundles the service's collaborators.
type ServiceDeps struct {
	Directory Directory
	Codes     CodeStore
	Mailer    Mailer
}

type service struct {
	directory Directory
	codes     CodeStore
	mailer    Mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		directory: deps.Directory,
		codes:     deps.Codes,
		mailer:    deps.Mailer,
	}
}

func (s *service) ValidateEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.directory.Exists(ctx, email)
	if err != nil {
		slog.Error("directory lookup failed", "endpoint", "validar-email", "email", email, "err", err)
		return false, err
	}
	return exists, nil
}

func (s *service) SendCode(ctx context.Context, email string) error {
	exists, err := s.directory.Exists(ctx, email)
	if err != nil {
		slog.Error("directory lookup failed", "endpoint", "enviar-codigo-verificacao", "email", email, "err", err)
		return err
	}
	if !exists {
		// Refuse before generating anything: no mail goes out to or about
		// addresses the directory doesn't know.
		return fmt.Errorf("email not found: %w", domain.ErrNotFound)
	}

	c, err := pkgcode.New()
	if err != nil {
		return err
	}

	v := &domain.VerificationCode{
		Email:     email,
		Code:      c,
		ExpiresAt: time.Now().Add(codeTTL).Unix(),
	}
	if err := s.codes.Put(ctx, v); err != nil {
		slog.Error("persist verification code failed", "endpoint", "enviar-codigo-verificacao", "email", email, "err", err)
		return err
	}

	if err := s.mailer.Send(email, "Your verification code", textBody(c), htmlBody(c)); err != nil {
		// The persisted code stays valid: the transport may have accepted
		// the message even though the dial reported a failure.
		slog.Error("verification email delivery failed", "endpoint", "enviar-codigo-verificacao", "email", email, "err", err)
		return fmt.Errorf("send verification email: %v: %w", err, domain.ErrDelivery)
	}
	return nil
}

func (s *service) VerifyCode(ctx context.Context, email, submitted string) (bool, error) {
	v, err := s.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		slog.Error("verification code lookup failed", "endpoint", "verificar-codigo", "email", email, "err", err)
		return false, err
	}
	if v.Expired(time.Now()) {
		return false, nil
	}
	if !strings.EqualFold(v.Code, submitted) {
		// Left in place so the caller can retry until expiry.
		return false, nil
	}
	if err := s.codes.Delete(ctx, email); err != nil {
		slog.Warn("failed to delete consumed verification code", "email", email, "err", err)
	}
	return true, nil
}

func textBody(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
}

func htmlBody(code string) string {
	return fmt.Sprintf(`<p>Your verification code is:</p><h2 style="letter-spacing:2px">%s</h2><p>It expires in 10 minutes.</p>`, code)
}
