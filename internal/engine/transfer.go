package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Sakal05/souk/internal/ledger"
)

// Transferer is the host's outbound-transfer capability: schedule an
// irrevocable payment from contract custody to a named account.
//
// Schedule must not block on the transfer itself - it queues the work
// and returns, and the implementation invokes done(err) exactly once
// when the host resolves the transfer. done is called from the
// transferer's own goroutine, strictly after Schedule has returned.
// Once scheduled a transfer cannot be withdrawn.
type Transferer interface {
	Schedule(t ledger.Transfer, done func(error))
}

// TransferFunc executes one outbound transfer against the host network.
// A nil return means the value reached the payee.
type TransferFunc func(t ledger.Transfer) error

// AsyncTransferer executes transfers on a single worker goroutine in
// scheduling order, mirroring a host that attempts outbound transfers
// one by one after the scheduling call commits.
//
// The pending queue is unbounded so Schedule never blocks. The engine
// calls Schedule while holding its entry-point mutex, and the
// completion callback takes that same mutex; a bounded queue would
// deadlock every entry point once a slow executor let it fill up.
type AsyncTransferer struct {
	exec TransferFunc

	mu      sync.Mutex
	cond    *sync.Cond
	pending []scheduledTransfer
	closed  bool
	done    chan struct{}
}

type scheduledTransfer struct {
	transfer ledger.Transfer
	done     func(error)
}

// NewAsyncTransferer creates a transferer executing transfers via exec.
// A nil exec accepts every transfer (the local-simulation default).
func NewAsyncTransferer(exec TransferFunc) *AsyncTransferer {
	if exec == nil {
		exec = func(t ledger.Transfer) error { return nil }
	}
	a := &AsyncTransferer{
		exec: exec,
		done: make(chan struct{}),
	}
	a.cond = sync.NewCond(&a.mu)
	go a.run()
	return a
}

func (a *AsyncTransferer) run() {
	defer close(a.done)
	for {
		a.mu.Lock()
		for len(a.pending) == 0 && !a.closed {
			a.cond.Wait()
		}
		if len(a.pending) == 0 {
			a.mu.Unlock()
			return
		}
		st := a.pending[0]
		a.pending = a.pending[1:]
		a.mu.Unlock()

		err := a.exec(st.transfer)
		if err != nil {
			slog.Warn("outbound transfer failed",
				"receipt", st.transfer.ReceiptID,
				"payee", st.transfer.Payee,
				"amount", st.transfer.Amount,
				"error", err)
		}
		st.done(err)
	}
}

// Schedule queues a transfer for execution and returns without
// blocking. A scheduled transfer is guaranteed to have its callback
// invoked, with a failure when the transferer is already closed.
func (a *AsyncTransferer) Schedule(t ledger.Transfer, done func(error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		// The engine never schedules after Close; resolve as failed so
		// the rollback hook still runs if it happens.
		go done(fmt.Errorf("transferer closed"))
		return
	}
	a.pending = append(a.pending, scheduledTransfer{transfer: t, done: done})
	a.cond.Signal()
}

// Close drains outstanding transfers and stops the worker. Blocks until
// every queued transfer has been attempted and its callback invoked.
func (a *AsyncTransferer) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.cond.Signal()
	a.mu.Unlock()
	<-a.done
}
