package http

import (
	"github.com/email-verify-api/internal/application/verification"
)

// Deps holds the infrastructure dependencies for the router. Everything is
// constructed once in main and shared read-only across requests; the narrow
// interface types come from the application package so tests can substitute
// doubles.
type Deps struct {
	Directory verification.Directory
	Codes     verification.CodeStore
	Mailer    verification.Mailer
}
