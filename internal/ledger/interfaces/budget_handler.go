package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

type BudgetServiceInterface interface {
	SetBudget(ctx context.Context, ownerID string, budget domain.Budget) (domain.Budget, error)
	RemoveBudget(ctx context.Context, ownerID, budgetID string) error
	Snapshot(ctx context.Context, ownerID string) (application.Snapshot, error)
}

type BudgetHandler struct {
	service BudgetServiceInterface
}

func NewBudgetHandler(service BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// Set creates or updates the budget for a category; there is at most one
// budget per category.
func (h *BudgetHandler) Set(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var budget domain.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	saved, err := h.service.SetBudget(r.Context(), owner, budget)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   saved,
	})
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
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
		"data":   snap.Budgets,
	})
}

// Progress reports month-to-date spend against every budget.
func (h *BudgetHandler) Progress(w http.ResponseWriter, r *http.Request) {
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
		"data":   application.BudgetReport(snap, time.Now().UTC()),
	})
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveBudget(r.Context(), owner, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget successfully deleted.",
	})
}
