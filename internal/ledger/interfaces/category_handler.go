package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/application"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

type CategoryServiceInterface interface {
	AddCategory(ctx context.Context, ownerID string, category domain.Category) (domain.Category, error)
	RemoveCategory(ctx context.Context, ownerID, categoryID string) error
	SeedDefaultCategories(ctx context.Context, ownerID string) error
	Snapshot(ctx context.Context, ownerID string) (application.Snapshot, error)
}

type CategoryHandler struct {
	service CategoryServiceInterface
}

func NewCategoryHandler(service CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.service.AddCategory(r.Context(), owner, category)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   created,
	})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
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
		"data":   snap.Categories,
	})
}

// Seed installs the default category set for a fresh owner.
func (h *CategoryHandler) Seed(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.SeedDefaultCategories(r.Context(), owner); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Default categories created.",
	})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveCategory(r.Context(), owner, r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully deleted.",
	})
}
