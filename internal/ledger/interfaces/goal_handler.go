package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

type GoalServiceInterface interface {
	AddGoal(ctx context.Context, ownerID string, goal domain.FinancialGoal) (domain.FinancialGoal, error)
	EditGoal(ctx context.Context, ownerID string, goal domain.FinancialGoal) error
	RemoveGoal(ctx context.Context, ownerID, goalID string) error
	ContributeToGoal(ctx context.Context, ownerID, goalID, accountID string, amount decimal.Decimal) error
	Snapshot(ctx context.Context, ownerID string) (application.Snapshot, error)
}

type GoalHandler struct {
	service GoalServiceInterface
}

func NewGoalHandler(service GoalServiceInterface) *GoalHandler {
	return &GoalHandler{service: service}
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var goal domain.FinancialGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.service.AddGoal(r.Context(), owner, goal)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   created,
	})
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
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
		"data":   snap.Goals,
	})
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var goal domain.FinancialGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	goal.ID = r.PathValue("id")
	if err := h.service.EditGoal(r.Context(), owner, goal); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully updated.",
	})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveGoal(r.Context(), owner, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully deleted.",
	})
}

type contributeRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (h *GoalHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.service.ContributeToGoal(r.Context(), owner, r.PathValue("id"), req.AccountID, req.Amount); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Contribution recorded.",
	})
}
