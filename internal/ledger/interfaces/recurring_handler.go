package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

type RecurringServiceInterface interface {
	AddRecurring(ctx context.Context, ownerID string, rule domain.RecurringTransaction) (domain.RecurringTransaction, error)
	EditRecurring(ctx context.Context, ownerID string, rule domain.RecurringTransaction) error
	RemoveRecurring(ctx context.Context, ownerID, ruleID string) error
	Snapshot(ctx context.Context, ownerID string) (application.Snapshot, error)
}

type RecurringHandler struct {
	service RecurringServiceInterface
}

func NewRecurringHandler(service RecurringServiceInterface) *RecurringHandler {
	return &RecurringHandler{service: service}
}

func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var rule domain.RecurringTransaction
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.service.AddRecurring(r.Context(), owner, rule)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   created,
	})
}

func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
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
		"data":   snap.Recurring,
	})
}

func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var rule domain.RecurringTransaction
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rule.ID = r.PathValue("id")
	if err := h.service.EditRecurring(r.Context(), owner, rule); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Recurring transaction successfully updated.",
	})
}

func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveRecurring(r.Context(), owner, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Recurring transaction successfully deleted.",
	})
}
