package messaging_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/messaging"
	"github.com/lampworks/moth-bridge/internal/ownership"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "ownership.sonic.resolved", messaging.Subject("", domain.ChainSonic))
	assert.Equal(t, "moths.base.resolved", messaging.Subject("moths", domain.ChainBase))
}

func TestNewScanID(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	first := messaging.NewScanID(at)
	later := messaging.NewScanID(at.Add(time.Second))

	parsed, err := ulid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), parsed.Time())
	assert.Less(t, first, later)
}

func TestNewSnapshot(t *testing.T) {
	owner := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	contract := common.HexToAddress("0x0000000000000000000000000000000000000c01")
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	snapshot := messaging.NewSnapshot("01SCAN", domain.ChainSonic, contract, &ownership.Result{
		Owner:    owner,
		Balance:  big.NewInt(3),
		TokenIDs: []*big.Int{big.NewInt(2), big.NewInt(10)},
		Source:   domain.ScanSourceLogScan,
		Partial:  true,
	}, at)

	assert.Equal(t, "01SCAN", snapshot.ScanID)
	assert.Equal(t, domain.ChainSonic, snapshot.Chain)
	assert.Equal(t, contract.Hex(), snapshot.Contract)
	assert.Equal(t, owner.Hex(), snapshot.Owner)
	assert.Equal(t, "3", snapshot.Balance)
	assert.Equal(t, []string{"2", "10"}, snapshot.TokenIDs)
	assert.True(t, snapshot.Partial)
	assert.Equal(t, time.UTC, snapshot.ScannedAt.Location())
}

func TestNoopPublisher(t *testing.T) {
	p := messaging.NewNoopPublisher()
	assert.NoError(t, p.PublishSnapshot(context.Background(), &domain.OwnershipSnapshot{}))
	p.Close()
}
