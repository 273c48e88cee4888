package api

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Ptt-Alertor/bank-api/models/bank"
)

var bankStore = bank.NewStore(bank.Seed())

// writeBankError maps store errors to HTTP statuses
func writeBankError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bank.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, bank.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// ListBanks returns every account in insertion order
func ListBanks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, bankStore.List())
}

// GetBank returns the first account with the given number
func GetBank(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	n, err := accountNumberParam(ps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := bankStore.Get(n)
	if err != nil {
		writeBankError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetBanksByEmail serves GET /banks/email/:email. httprouter cannot hold a
// static "email" segment next to the :account_number wildcard, so the route
// is registered as /banks/:account_number/:email and the first segment is
// checked here.
func GetBanksByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("account_number") != "email" {
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}

	accounts, err := bankStore.FindByEmail(ps.ByName("email"))
	if err != nil {
		writeBankError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// CreateBank appends a new account
func CreateBank(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	a, err := readAccount(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, bankStore.Create(a))
}

// ReplaceBank overwrites an account with the full record in the body
func ReplaceBank(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	n, err := accountNumberParam(ps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := readAccount(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	updated, err := bankStore.Replace(n, a)
	if err != nil {
		writeBankError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// readAccount reads a full account record; every field must be present
func readAccount(w http.ResponseWriter, r *http.Request) (bank.Account, error) {
	var in bank.AccountPatch
	if err := decodeJSON(w, r, &in); err != nil {
		return bank.Account{}, err
	}
	if err := requireFields(in.Missing()); err != nil {
		return bank.Account{}, err
	}

	var a bank.Account
	in.Apply(&a)
	if !isValidEmail(a.Email) {
		return bank.Account{}, errInvalidEmail
	}
	return a, nil
}

// PatchBank overwrites only the fields present in the body
func PatchBank(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	n, err := accountNumberParam(ps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var p bank.AccountPatch
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if email, ok := p.Email.Get(); ok && !isValidEmail(email) {
		writeError(w, http.StatusBadRequest, errInvalidEmail)
		return
	}

	updated, err := bankStore.Patch(n, p)
	if err != nil {
		writeBankError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBank removes an account and returns it
func DeleteBank(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	n, err := accountNumberParam(ps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	deleted, err := bankStore.Delete(n)
	if err != nil {
		writeBankError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

// Deposit adds ?amount= to the balance
func Deposit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	balanceOp(w, r, ps, bankStore.Deposit)
}

// Withdraw subtracts ?amount= from the balance
func Withdraw(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	balanceOp(w, r, ps, bankStore.Withdraw)
}

// SetBalance sets the balance to ?amount=
func SetBalance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	balanceOp(w, r, ps, bankStore.SetBalance)
}

func balanceOp(w http.ResponseWriter, r *http.Request, ps httprouter.Params, op func(int64, float64) (*bank.Account, error)) {
	n, err := accountNumberParam(ps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := amountQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := op(n, amount)
	if err != nil {
		writeBankError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
