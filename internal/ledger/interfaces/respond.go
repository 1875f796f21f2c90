package interfaces

import (
	"encoding/json"
	"net/http"

	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

// ownerID extracts the acting owner. Authentication is out of scope here;
// whatever fronts this API is expected to have verified the identity.
func ownerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := ownerID(r)
	if owner == "" {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return owner, true
}

// respondServiceError maps the ledger error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case ledgerErrors.IsValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case ledgerErrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case ledgerErrors.IsCommitError(err):
		// Nothing was applied; the client may retry the whole request.
		respondError(w, http.StatusServiceUnavailable, "Commit failed, please retry")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
