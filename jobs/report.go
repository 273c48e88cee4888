package jobs

import (
	log "github.com/Ptt-Alertor/logrus"

	"github.com/Ptt-Alertor/bank-api/models/bank"
	"github.com/Ptt-Alertor/bank-api/models/user"
)

// Summary is a snapshot of the stores
type Summary struct {
	Accounts       int
	ActiveAccounts int
	Users          int
	TotalBalance   float64
}

// Reporter logs a summary of the stores each time it runs
type Reporter struct {
	banks *bank.Store
	users *user.Store
}

// NewReporter creates a new Reporter
func NewReporter(banks *bank.Store, users *user.Store) *Reporter {
	return &Reporter{banks: banks, users: users}
}

// Summary computes the current snapshot
func (rp Reporter) Summary() Summary {
	var s Summary
	for _, a := range rp.banks.List() {
		s.Accounts++
		if a.IsActive {
			s.ActiveAccounts++
		}
		s.TotalBalance += a.Balance
	}
	s.Users = rp.users.Len()
	return s
}

// Run executes the report job
func (rp Reporter) Run() {
	s := rp.Summary()
	log.WithFields(log.Fields{
		"accounts":        s.Accounts,
		"active_accounts": s.ActiveAccounts,
		"users":           s.Users,
		"total_balance":   s.TotalBalance,
	}).Info("Store Report")
}
