package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// maxReadBytes caps request bodies
const maxReadBytes = 1 * 1024 * 1024

var (
	errInvalidBody          = errors.New("invalid request body")
	errInvalidEmail         = errors.New("invalid email format")
	errInvalidAccountNumber = errors.New("invalid account number")
	errInvalidAmount        = errors.New("amount query parameter must be a number")
	errMissingFields        = errors.New("missing required fields")
	errNotFound             = errors.New("not found")

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// decodeJSON reads a size-limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxReadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// isValidEmail validates email format
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func accountNumberParam(ps httprouter.Params) (int64, error) {
	n, err := strconv.ParseInt(ps.ByName("account_number"), 10, 64)
	if err != nil {
		return 0, errInvalidAccountNumber
	}
	return n, nil
}

func amountQuery(r *http.Request) (float64, error) {
	v := r.URL.Query().Get("amount")
	if v == "" {
		return 0, errInvalidAmount
	}
	amount, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errInvalidAmount
	}
	return amount, nil
}

// requireFields fails when a full record left any field out
func requireFields(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", errMissingFields, strings.Join(missing, ", "))
}
