// Package ledger records balance movements of bank accounts.
package ledger

import (
	"context"
	"sync"
	"time"

	log "github.com/Ptt-Alertor/logrus"

	"github.com/Ptt-Alertor/bank-api/models/bank"
)

const (
	recorderBuffer = 1024
	writeTimeout   = 5 * time.Second
)

// Entry is one balance movement
type Entry struct {
	ID            int64     `json:"id"`
	AccountNumber int64     `json:"account_number"`
	Kind          string    `json:"kind"`
	Amount        float64   `json:"amount"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// Writer persists entries
type Writer interface {
	Insert(ctx context.Context, e *Entry) error
}

// EntryFromEvent converts a balance movement event. ok is false for any other op.
func EntryFromEvent(e bank.Event) (entry *Entry, ok bool) {
	if !e.Op.IsBalanceMovement() {
		return nil, false
	}
	return &Entry{
		AccountNumber: e.AccountNumber,
		Kind:          string(e.Op),
		Amount:        e.Amount,
		Balance:       e.Account.Balance,
		CreatedAt:     e.At,
	}, true
}

// Recorder is a bank.Listener writing balance movements through a Writer on
// its own goroutine.
type Recorder struct {
	w    Writer
	ch   chan *Entry
	done chan struct{}
	once sync.Once
}

// NewRecorder starts the recorder worker. Call Close to drain and stop it.
func NewRecorder(w Writer) *Recorder {
	r := &Recorder{
		w:    w,
		ch:   make(chan *Entry, recorderBuffer),
		done: make(chan struct{}),
	}
	go r.worker()
	return r
}

// Handle queues balance movements without blocking
func (r *Recorder) Handle(e bank.Event) {
	entry, ok := EntryFromEvent(e)
	if !ok {
		return
	}
	select {
	case r.ch <- entry:
	default:
		log.WithFields(log.Fields{
			"kind":           entry.Kind,
			"account_number": entry.AccountNumber,
		}).Warn("Ledger queue full, entry dropped")
	}
}

// Close stops accepting entries and waits until queued ones are written
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.ch)
		<-r.done
	})
}

func (r *Recorder) worker() {
	defer close(r.done)
	for entry := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := r.w.Insert(ctx, entry)
		cancel()
		if err != nil {
			log.WithFields(log.Fields{
				"kind":           entry.Kind,
				"account_number": entry.AccountNumber,
			}).WithError(err).Error("Failed to write ledger entry")
		}
	}
}
