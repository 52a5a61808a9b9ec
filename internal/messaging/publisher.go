package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/ownership"
)

// DefaultSubjectPrefix is the first token of every snapshot subject
const DefaultSubjectPrefix = "ownership"

// Publisher defines the interface for publishing ownership snapshots to the message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockSnapshotPublisher
type Publisher interface {
	// PublishSnapshot publishes a committed scan result
	PublishSnapshot(ctx context.Context, snapshot *domain.OwnershipSnapshot) error
	// Close closes the connection
	Close()
}

// Subject builds the subject a snapshot of chain is published on.
// Format: {prefix}.{chain}.resolved, e.g. ownership.sonic.resolved
func Subject(prefix string, chain domain.ChainKey) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return fmt.Sprintf("%s.%s.resolved", prefix, chain)
}

// NewScanID returns a lexically sortable id for a scan started at t
func NewScanID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// NewSnapshot converts a resolver result into its published form
func NewSnapshot(scanID string, chain domain.ChainKey, contract common.Address, result *ownership.Result, scannedAt time.Time) *domain.OwnershipSnapshot {
	balance := "0"
	if result.Balance != nil {
		balance = result.Balance.String()
	}
	return &domain.OwnershipSnapshot{
		ScanID:    scanID,
		Chain:     chain,
		Contract:  contract.Hex(),
		Owner:     result.Owner.Hex(),
		Balance:   balance,
		TokenIDs:  domain.TokenIDStrings(result.TokenIDs),
		Source:    result.Source,
		Partial:   result.Partial,
		ScannedAt: scannedAt.UTC(),
	}
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every snapshot.
// It is used when no broker URL is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishSnapshot(ctx context.Context, snapshot *domain.OwnershipSnapshot) error {
	return nil
}

func (noopPublisher) Close() {}
