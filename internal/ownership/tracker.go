package ownership

import (
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// Ticket identifies one scan generation for one owner
type Ticket struct {
	Owner      common.Address
	Generation uint64
}

// Tracker holds the displayed set per owner and makes sure results of an
// outdated scan never replace those of a newer one.
// Generations come from one counter shared by all owners, so an owner whose
// entry expired never hands out a number an older ticket still carries.
type Tracker struct {
	mu          sync.Mutex
	next        uint64
	generations *cache.Cache
	items       *cache.Cache
}

// NewTracker keeps displayed sets and scan generations for ttl after their last write
func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		generations: cache.New(ttl, 2*ttl),
		items:       cache.New(ttl, 2*ttl),
	}
}

// Begin starts a new generation for owner; earlier tickets become stale
func (t *Tracker) Begin(owner common.Address) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	t.generations.SetDefault(key(owner), t.next)
	return Ticket{Owner: owner, Generation: t.next}
}

// IsCurrent reports whether ticket is still the newest generation
func (t *Tracker) IsCurrent(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.isCurrent(ticket)
}

// Commit fully replaces the displayed set, unless a newer generation started
func (t *Tracker) Commit(ticket Ticket, items []domain.MothItem) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isCurrent(ticket) {
		return domain.ErrSuperseded
	}
	t.items.SetDefault(key(ticket.Owner), slices.Clone(items))
	t.generations.SetDefault(key(ticket.Owner), ticket.Generation)
	return nil
}

// Append merges a manually added item in front of the displayed set.
// An item already present is left where it is.
func (t *Tracker) Append(owner common.Address, item domain.MothItem) []domain.MothItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.snapshot(owner)
	if slices.ContainsFunc(current, func(m domain.MothItem) bool { return m.TokenID == item.TokenID }) {
		return current
	}

	next := append([]domain.MothItem{item}, current...)
	t.items.SetDefault(key(owner), next)
	return slices.Clone(next)
}

// Snapshot returns a copy of the displayed set
func (t *Tracker) Snapshot(owner common.Address) ([]domain.MothItem, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.items.Get(key(owner))
	if !ok {
		return nil, false
	}
	return slices.Clone(v.([]domain.MothItem)), true
}

// Invalidate drops the displayed set and outdates any scan in flight
func (t *Tracker) Invalidate(owner common.Address) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generations.Delete(key(owner))
	t.items.Delete(key(owner))
}

func (t *Tracker) isCurrent(ticket Ticket) bool {
	v, ok := t.generations.Get(key(ticket.Owner))
	return ok && v.(uint64) == ticket.Generation
}

func (t *Tracker) snapshot(owner common.Address) []domain.MothItem {
	v, ok := t.items.Get(key(owner))
	if !ok {
		return nil
	}
	return slices.Clone(v.([]domain.MothItem))
}

func key(owner common.Address) string {
	return owner.Hex()
}
