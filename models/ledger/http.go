package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/Ptt-Alertor/logrus"
	"github.com/gorilla/mux"
)

const defaultListLimit = 100

// Reader lists stored entries
type Reader interface {
	ListByAccount(ctx context.Context, accountNumber int64, limit int) ([]*Entry, error)
}

// ListHandler serves the entries of {account_number}, newest first. ?limit=
// caps the result and defaults to 100.
func ListHandler(r Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		n, err := strconv.ParseInt(mux.Vars(req)["account_number"], 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid account number"})
			return
		}

		limit := defaultListLimit
		if v := req.URL.Query().Get("limit"); v != "" {
			limit, err = strconv.Atoi(v)
			if err != nil || limit <= 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
				return
			}
		}

		entries, err := r.ListByAccount(req.Context(), n, limit)
		if err != nil {
			log.WithError(err).WithField("account_number", n).Error("List Ledger Failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "ledger unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
