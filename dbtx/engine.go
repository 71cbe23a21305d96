package dbtx

import (
	"sync"

	"github.com/Hoshiningen/concurrent-data-structures/queue"
	"github.com/joeycumines/logiface"
)

type (
	// EngineConfig models optional configuration, for NewEngine.
	EngineConfig struct {
		// Logger receives engine events (transactions enqueued and
		// dequeued). A nil logger disables logging.
		// **Defaults to nil (disabled), if nil, or EngineConfig is nil.**
		Logger *logiface.Logger[logiface.Event]
	}

	// Engine owns the staged transaction queues. Transactions enter
	// through AddTransaction, which places them on the pending queue; the
	// io, cp1, cp2, delay, and blocking stages are reserved for a routing
	// policy that has not been decided, and currently have no producer.
	//
	// Prefer constructing an Engine with NewEngine and injecting it; the
	// process-wide Instance is provided where a single shared engine is
	// the contract.
	Engine struct {
		logger *logiface.Logger[logiface.Event]

		io       queue.Locked[*Transaction]
		cp1      queue.Locked[*Transaction]
		cp2      queue.Locked[*Transaction]
		delay    queue.Locked[*Transaction]
		pending  queue.Locked[*Transaction]
		blocking queue.Locked[*Transaction]
	}
)

var (
	instance     *Engine
	instanceOnce sync.Once
)

// NewEngine initializes a new Engine, using the provided EngineConfig. The
// provided config may be nil.
func NewEngine(config *EngineConfig) *Engine {
	engine := new(Engine)
	if config != nil {
		engine.logger = config.Logger
	}
	return engine
}

// Instance returns the process-wide Engine, constructing it on first use.
// It is never torn down before process exit.
func Instance() *Engine {
	instanceOnce.Do(func() {
		instance = NewEngine(nil)
	})
	return instance
}

// AddTransaction places transaction on the pending queue. A panic will
// occur if transaction is nil.
func (x *Engine) AddTransaction(transaction *Transaction) {
	if transaction == nil {
		panic(`dbtx: nil transaction`)
	}
	x.pending.Enqueue(transaction)
	x.logger.Info().
		Int(`commands`, transaction.Len()).
		Log(`transaction enqueued`)
}

// NextPending removes and returns the oldest pending transaction,
// reporting false if there is none. Pending transactions are delivered in
// the order they were added.
func (x *Engine) NextPending() (*Transaction, bool) {
	transaction, ok := x.pending.Dequeue()
	if ok {
		x.logger.Debug().
			Int(`commands`, transaction.Len()).
			Log(`transaction dequeued`)
	}
	return transaction, ok
}
