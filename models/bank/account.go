package bank

import (
	"errors"

	"github.com/Ptt-Alertor/bank-api/models/optional"
)

var (
	ErrAccountNotFound   = errors.New("bank account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Account represents a bank account record
type Account struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Email         string  `json:"email"`
	AccountNumber int64   `json:"account_number"`
	Balance       float64 `json:"balance"`
	IsActive      bool    `json:"is_active"`
	TypeOfAccount string  `json:"type_of_account"`
}

// AccountPatch holds the fields of a partial update. Unset fields are left
// untouched by Apply.
type AccountPatch struct {
	Name          optional.Optional[string]  `json:"name"`
	Address       optional.Optional[string]  `json:"address"`
	Email         optional.Optional[string]  `json:"email"`
	AccountNumber optional.Optional[int64]   `json:"account_number"`
	Balance       optional.Optional[float64] `json:"balance"`
	IsActive      optional.Optional[bool]    `json:"is_active"`
	TypeOfAccount optional.Optional[string]  `json:"type_of_account"`
}

// Apply overwrites every set field of p on a
func (p AccountPatch) Apply(a *Account) {
	if v, ok := p.Name.Get(); ok {
		a.Name = v
	}
	if v, ok := p.Address.Get(); ok {
		a.Address = v
	}
	if v, ok := p.Email.Get(); ok {
		a.Email = v
	}
	if v, ok := p.AccountNumber.Get(); ok {
		a.AccountNumber = v
	}
	if v, ok := p.Balance.Get(); ok {
		a.Balance = v
	}
	if v, ok := p.IsActive.Get(); ok {
		a.IsActive = v
	}
	if v, ok := p.TypeOfAccount.Get(); ok {
		a.TypeOfAccount = v
	}
}

// Missing returns the json names of the fields p leaves unset, in record
// order. A body used as a full record must leave none unset.
func (p AccountPatch) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"name", p.Name.Set},
		{"address", p.Address.Set},
		{"email", p.Email.Set},
		{"account_number", p.AccountNumber.Set},
		{"balance", p.Balance.Set},
		{"is_active", p.IsActive.Set},
		{"type_of_account", p.TypeOfAccount.Set},
	} {
		if !f.set {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Seed returns the records every fresh store starts with
func Seed() []Account {
	return []Account{
		{
			Name:          "Bank of Example",
			Address:       "123 Example Street",
			Email:         "contact@bankofexample.com",
			AccountNumber: 123456789,
			Balance:       1000.0,
			IsActive:      true,
			TypeOfAccount: "savings",
		},
		{
			Name:          "Example National Bank",
			Address:       "456 Example Avenue",
			Email:         "info@examplenational.com",
			AccountNumber: 987654321,
			Balance:       2500.5,
			IsActive:      true,
			TypeOfAccount: "joint",
		},
	}
}
