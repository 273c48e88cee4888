package bank

import "time"

// Op names a store mutation
type Op string

const (
	OpCreate     Op = "create"
	OpReplace    Op = "replace"
	OpPatch      Op = "patch"
	OpDelete     Op = "delete"
	OpDeposit    Op = "deposit"
	OpWithdraw   Op = "withdraw"
	OpSetBalance Op = "set_balance"
)

// IsBalanceMovement reports whether op only changes a balance
func (op Op) IsBalanceMovement() bool {
	return op == OpDeposit || op == OpWithdraw || op == OpSetBalance
}

// Event describes one successful mutation of the Store.
//
// AccountNumber is the key the operation was addressed with; Account is the
// record after the mutation (the removed record for OpDelete). Amount is only
// meaningful for balance movements.
type Event struct {
	Op            Op        `json:"op"`
	AccountNumber int64     `json:"key"`
	Account       Account   `json:"account"`
	Amount        float64   `json:"amount,omitempty"`
	At            time.Time `json:"at"`
}

// Listener receives store events. Handle is called with the store lock held,
// in mutation order, so implementations must return quickly.
type Listener interface {
	Handle(e Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(e Event)

// Handle calls f(e)
func (f ListenerFunc) Handle(e Event) {
	f(e)
}
