package overview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/wallet/account"
	"github/chapool/sol-explorer/internal/wallet/history"
	"github/chapool/sol-explorer/internal/wallet/keys"
)

// ErrSuperseded is returned by a load that was replaced by a newer one before
// it finished. Its partial results are dropped.
var ErrSuperseded = errors.New("load superseded by a newer load")

// View is everything shown for one address. A failed account fetch leaves
// Snapshot nil and sets SnapshotErr; history never fails.
type View struct {
	LoadID       string
	Address      string
	Snapshot     *account.Snapshot
	SnapshotErr  error
	Transactions []*history.Summary
	LoadedAt     time.Time
}

// Loader fetches account info and history concurrently. Only the most recent
// load may complete: starting a new one cancels the one in flight.
type Loader struct {
	accounts account.Service
	history  history.Service

	mu      sync.Mutex
	current string
	cancel  context.CancelFunc
}

func NewLoader(accounts account.Service, history history.Service) *Loader {
	return &Loader{
		accounts: accounts,
		history:  history,
	}
}

func (l *Loader) Load(ctx context.Context, address string) (*View, error) {
	if _, err := keys.ParseSolanaAddress(address); err != nil {
		return nil, err
	}

	loadID := uuid.NewString()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.begin(loadID, cancel)
	defer l.end(loadID)

	log := util.LogFromContext(ctx).With().
		Str("component", "overview_loader").
		Str("load_id", loadID).
		Str("address", address).
		Logger()
	ctx = util.WithLogger(ctx, log)

	view := &View{
		LoadID:  loadID,
		Address: address,
	}

	var group errgroup.Group
	group.Go(func() error {
		view.Snapshot, view.SnapshotErr = l.accounts.Fetch(ctx, address)
		return nil
	})
	group.Go(func() error {
		view.Transactions = l.history.Fetch(ctx, address)
		return nil
	})
	_ = group.Wait()

	if l.superseded(loadID) {
		log.Debug().Msg("Dropping superseded load")
		return nil, ErrSuperseded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view.LoadedAt = time.Now().UTC()

	return view, nil
}

func (l *Loader) begin(loadID string, cancel context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.current = loadID
	l.cancel = cancel
}

func (l *Loader) end(loadID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == loadID {
		l.current = ""
		l.cancel = nil
	}
}

func (l *Loader) superseded(loadID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.current != loadID
}
