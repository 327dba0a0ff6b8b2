package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/pixgen-api/internal/api/shared"
)

// CreditService defines the credit operations the handler needs.
type CreditService interface {
	// Credits returns the current balance.
	Credits() int

	// PurchaseCredits adds one bundle to the balance and returns the new balance.
	PurchaseCredits() int
}

// CreditHandler handles credit-related HTTP requests
type CreditHandler struct {
	credits CreditService
	logger  *slog.Logger
}

// NewCreditHandler creates a new CreditHandler
func NewCreditHandler(credits CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		credits: credits,
		logger:  logger,
	}
}

// GetCredits handles GET /api/credits requests.
// It returns the current balance and has no side effects.
func (h *CreditHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CreditsResponse{
		Credits: h.credits.Credits(),
	})
}

// PurchaseCredits handles POST /api/purchase-credits requests.
// It unconditionally adds one bundle and returns the new balance; there is
// no validation or payment integration (metering only).
func (h *CreditHandler) PurchaseCredits(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CreditsResponse{
		Credits: h.credits.PurchaseCredits(),
	})
}
