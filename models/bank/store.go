package bank

import (
	"sync"
	"time"

	log "github.com/Ptt-Alertor/logrus"
)

// Store keeps account records in insertion order.
//
// Records are addressed by account number, which is not unique: every lookup
// and mutation acts on the first match. All methods are safe for concurrent
// use and return copies, never references into the collection.
type Store struct {
	mu        sync.RWMutex
	accounts  []Account
	listeners []Listener
	now       func() time.Time
}

// NewStore creates a store holding a copy of seed
func NewStore(seed []Account, listeners ...Listener) *Store {
	accounts := make([]Account, len(seed))
	copy(accounts, seed)
	return &Store{
		accounts:  accounts,
		listeners: listeners,
		now:       time.Now,
	}
}

// Subscribe registers l for every subsequent mutation
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// List returns all accounts in insertion order
func (s *Store) List() []*Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*Account, 0, len(s.accounts))
	for i := range s.accounts {
		a := s.accounts[i]
		accounts = append(accounts, &a)
	}
	return accounts
}

// Len returns the number of stored accounts
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Get returns the first account with the given number
func (s *Store) Get(accountNumber int64) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(accountNumber)
	if i < 0 {
		return nil, ErrAccountNotFound
	}
	a := s.accounts[i]
	return &a, nil
}

// FindByEmail returns every account with the given email
func (s *Store) FindByEmail(email string) ([]*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var accounts []*Account
	for i := range s.accounts {
		if s.accounts[i].Email == email {
			a := s.accounts[i]
			accounts = append(accounts, &a)
		}
	}
	if len(accounts) == 0 {
		return nil, ErrAccountNotFound
	}
	return accounts, nil
}

// Create appends a and echoes it back. Duplicate account numbers are accepted.
func (s *Store) Create(a Account) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = append(s.accounts, a)
	s.emit(OpCreate, a.AccountNumber, a, 0)
	return &a
}

// Replace overwrites the first account numbered accountNumber with a. The new
// record may carry a different account number.
func (s *Store) Replace(accountNumber int64, a Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(accountNumber)
	if i < 0 {
		return nil, ErrAccountNotFound
	}
	s.accounts[i] = a
	s.emit(OpReplace, accountNumber, a, 0)
	return &a, nil
}

// Patch overwrites the fields set in p on the first matching account
func (s *Store) Patch(accountNumber int64, p AccountPatch) (*Account, error) {
	return s.mutate(OpPatch, accountNumber, 0, func(a *Account) error {
		p.Apply(a)
		return nil
	})
}

// Delete removes the first matching account, keeping the order of the rest
func (s *Store) Delete(accountNumber int64) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(accountNumber)
	if i < 0 {
		return nil, ErrAccountNotFound
	}
	a := s.accounts[i]
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	s.emit(OpDelete, accountNumber, a, 0)
	return &a, nil
}

// Deposit adds amount to the balance. The amount is not validated.
func (s *Store) Deposit(accountNumber int64, amount float64) (*Account, error) {
	return s.mutate(OpDeposit, accountNumber, amount, func(a *Account) error {
		a.Balance += amount
		return nil
	})
}

// Withdraw subtracts amount from the balance unless it exceeds the balance
func (s *Store) Withdraw(accountNumber int64, amount float64) (*Account, error) {
	return s.mutate(OpWithdraw, accountNumber, amount, func(a *Account) error {
		if a.Balance < amount {
			return ErrInsufficientFunds
		}
		a.Balance -= amount
		return nil
	})
}

// SetBalance sets the balance to exactly amount
func (s *Store) SetBalance(accountNumber int64, amount float64) (*Account, error) {
	return s.mutate(OpSetBalance, accountNumber, amount, func(a *Account) error {
		a.Balance = amount
		return nil
	})
}

// mutate applies fn to a copy of the first matching account and stores the
// copy only when fn succeeds.
func (s *Store) mutate(op Op, accountNumber int64, amount float64, fn func(a *Account) error) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(accountNumber)
	if i < 0 {
		return nil, ErrAccountNotFound
	}
	a := s.accounts[i]
	if err := fn(&a); err != nil {
		return nil, err
	}
	s.accounts[i] = a
	s.emit(op, accountNumber, a, amount)
	return &a, nil
}

func (s *Store) indexOf(accountNumber int64) int {
	for i := range s.accounts {
		if s.accounts[i].AccountNumber == accountNumber {
			return i
		}
	}
	return -1
}

// emit must be called with s.mu held
func (s *Store) emit(op Op, accountNumber int64, a Account, amount float64) {
	log.WithFields(log.Fields{
		"op":             op,
		"account_number": accountNumber,
		"balance":        a.Balance,
	}).Debug("Bank account changed")

	if len(s.listeners) == 0 {
		return
	}
	e := Event{Op: op, AccountNumber: accountNumber, Account: a, Amount: amount, At: s.now()}
	for _, l := range s.listeners {
		l.Handle(e)
	}
}
