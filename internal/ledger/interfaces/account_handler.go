package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

type AccountServiceInterface interface {
	AddAccount(ctx context.Context, ownerID string, account domain.Account) (domain.Account, error)
	EditAccount(ctx context.Context, ownerID string, account domain.Account) error
	RemoveAccount(ctx context.Context, ownerID, accountID string) error
	Snapshot(ctx context.Context, ownerID string) (application.Snapshot, error)
}

type AccountHandler struct {
	service AccountServiceInterface
}

func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var account domain.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.service.AddAccount(r.Context(), owner, account)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   created,
	})
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
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
		"data":   snap.Accounts,
	})
}

// Update overwrites the account, balance included. The balance override is
// deliberate: it resets the running total without reconciling history.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var account domain.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	account.ID = r.PathValue("id")
	if err := h.service.EditAccount(r.Context(), owner, account); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully updated.",
	})
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveAccount(r.Context(), owner, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully deleted.",
	})
}
