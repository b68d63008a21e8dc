package inventory

import (
	"context"
	"sync"
)

// undoKey is a context key type for the undo log of the current unit of work.
type undoKey struct{}

// undoLog collects compensation callbacks registered during a unit of work.
type undoLog struct {
	mu    sync.Mutex
	undos []func()
}

// add registers a compensation callback.
func (l *undoLog) add(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undos = append(l.undos, fn)
}

// run executes the registered callbacks in reverse registration order.
func (l *undoLog) run() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.undos) - 1; i >= 0; i-- {
		l.undos[i]()
	}
	l.undos = nil
}

// MemoryTxManager is an in-process unit-of-work manager paired with
// MemoryLedger. It implements the same TxManager contract as the SQL one:
// when the function returns an error, every reservation registered during the
// unit of work is released, and the error is returned unchanged.
type MemoryTxManager struct{}

// NewMemoryTxManager creates a new MemoryTxManager.
func NewMemoryTxManager() *MemoryTxManager {
	return &MemoryTxManager{}
}

// WithTx executes fn with an undo log in context. On error the registered
// compensations run in reverse order and fn's error is returned unchanged.
func (m *MemoryTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	log := &undoLog{}
	ctx = context.WithValue(ctx, undoKey{}, log)

	if err := fn(ctx); err != nil {
		log.run()
		return err
	}

	return nil
}

// getUndoLog retrieves the undo log from context, or nil outside a unit of work.
func getUndoLog(ctx context.Context) *undoLog {
	log, _ := ctx.Value(undoKey{}).(*undoLog)
	return log
}
