package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
)

type ReportServiceInterface interface {
	Snapshot(ctx context.Context, ownerID string) (application.Snapshot, error)
	ResetData(ctx context.Context, ownerID string) error
}

// ReportHandler serves the read-only reports and the data-reset endpoint.
type ReportHandler struct {
	service  ReportServiceInterface
	sessions *application.SessionManager
}

func NewReportHandler(service ReportServiceInterface, sessions *application.SessionManager) *ReportHandler {
	return &ReportHandler{service: service, sessions: sessions}
}

func (h *ReportHandler) FinancialHealth(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	snap, err := h.service.Snapshot(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   application.FinancialHealth(snap, time.Now().UTC()),
	})
}

// ResetData wipes every collection for the owner.
func (h *ReportHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.ResetData(r.Context(), owner); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "All data deleted.",
	})
}

// CloseSession detaches the owner's subscriptions and clears local state,
// the logout counterpart of the implicit open on first use.
func (h *ReportHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	h.sessions.Close(owner)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Session closed.",
	})
}
