package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

type DebtServiceInterface interface {
	AddDebt(ctx context.Context, ownerID string, debt domain.Debt) (domain.Debt, error)
	EditDebt(ctx context.Context, ownerID string, debt domain.Debt) error
	RemoveDebt(ctx context.Context, ownerID, debtID string) error
	PayDebt(ctx context.Context, ownerID, debtID string, amount decimal.Decimal, accountID string) error
	Snapshot(ctx context.Context, ownerID string) (application.Snapshot, error)
}

type DebtHandler struct {
	service DebtServiceInterface
}

func NewDebtHandler(service DebtServiceInterface) *DebtHandler {
	return &DebtHandler{service: service}
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var debt domain.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.service.AddDebt(r.Context(), owner, debt)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   created,
	})
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
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
		"data":   snap.Debts,
	})
}

func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var debt domain.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	debt.ID = r.PathValue("id")
	if err := h.service.EditDebt(r.Context(), owner, debt); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Debt successfully updated.",
	})
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveDebt(r.Context(), owner, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Debt successfully deleted.",
	})
}

type payDebtRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (h *DebtHandler) Pay(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req payDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.service.PayDebt(r.Context(), owner, r.PathValue("id"), req.Amount, req.AccountID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Payment recorded.",
	})
}
