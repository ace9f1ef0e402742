package uow

import (
	"context"
	"fmt"
	"sync"

	"github.com/kirinyoku/tix-ledger/internal/domain"
	"github.com/kirinyoku/tix-ledger/internal/ledger"
)

// AfterCommit is a function that runs after a successful commit, outside the lock.
type AfterCommit func(ctx context.Context)

// Persister stores the rows a committed unit of work touched. changes uses
// the snapshot shape but only carries touched entities and balances; its
// sequences are always current.
type Persister interface {
	SaveChanges(ctx context.Context, changes domain.Snapshot) error
}

// UoW serializes every access to a ledger. Writes are all-or-nothing: when fn
// or the persister fails, the ledger's journal undoes what fn touched.
type UoW struct {
	mu     sync.RWMutex
	ledger *ledger.Ledger
	store  Persister
}

// NewUoW wraps l. A nil store keeps the ledger in memory only.
func NewUoW(l *ledger.Ledger, store Persister) *UoW {
	return &UoW{ledger: l, store: store}
}

// Do runs fn under the exclusive lock. After a successful commit,
// it executes all after-commit hooks.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, l *ledger.Ledger, after func(AfterCommit)) error,
) error {
	const op = "uow.Do"

	var hooks []AfterCommit

	err := func() error {
		u.mu.Lock()
		defer u.mu.Unlock()

		u.ledger.Begin()

		if err := fn(ctx, u.ledger, func(h AfterCommit) {
			hooks = append(hooks, h)
		}); err != nil {
			u.ledger.Rollback()
			return err
		}

		if changes, ok := u.ledger.Changes(); ok && u.store != nil {
			if err := u.store.SaveChanges(ctx, changes); err != nil {
				u.ledger.Rollback()
				return fmt.Errorf("%s: persist: %w", op, err)
			}
		}

		u.ledger.Commit()
		return nil
	}()
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}

// Read runs fn under the shared lock. fn must not mutate the ledger.
func (u *UoW) Read(fn func(l *ledger.Ledger) error) error {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return fn(u.ledger)
}
