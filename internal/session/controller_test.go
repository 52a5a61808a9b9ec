package session_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/mocks"
	"github.com/lampworks/moth-bridge/internal/ownership"
	"github.com/lampworks/moth-bridge/internal/session"
	"github.com/lampworks/moth-bridge/internal/wallet"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var (
	holder   = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	other    = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	contract = common.HexToAddress("0x0000000000000000000000000000000000000c01")
	now      = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

var sonic = domain.ChainInfo{
	Key:           domain.ChainSonic,
	Name:          "Sonic",
	ChainID:       146,
	WalletRPCURLs: []string{"https://rpc.soniclabs.com"},
	Explorer:      "https://sonicscan.org",
}

type testMocks struct {
	ctrl      *gomock.Controller
	provider  *mocks.MockWalletProvider
	resolver  *mocks.MockResolver
	previews  *mocks.MockPreviewLoader
	publisher *mocks.MockSnapshotPublisher
	clock     *mocks.MockClock
	tracker   *ownership.Tracker

	onAccounts   func([]common.Address)
	onChain      func(string)
	unsubscribed int
}

func setupTestController(t *testing.T) (*testMocks, *session.Controller) {
	ctrl := gomock.NewController(t)
	tm := &testMocks{
		ctrl:      ctrl,
		provider:  mocks.NewMockWalletProvider(ctrl),
		resolver:  mocks.NewMockResolver(ctrl),
		previews:  mocks.NewMockPreviewLoader(ctrl),
		publisher: mocks.NewMockSnapshotPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		tracker:   ownership.NewTracker(time.Hour),
	}

	tm.provider.EXPECT().OnAccountsChanged(gomock.Any()).DoAndReturn(func(fn func([]common.Address)) wallet.Unsubscribe {
		tm.onAccounts = fn
		return func() { tm.unsubscribed++ }
	})
	tm.provider.EXPECT().OnChainChanged(gomock.Any()).DoAndReturn(func(fn func(string)) wallet.Unsubscribe {
		tm.onChain = fn
		return func() { tm.unsubscribed++ }
	})
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	c := session.New(tm.provider, tm.resolver, tm.previews, tm.tracker, tm.publisher, tm.clock, session.Config{
		SourceChain: sonic,
		Contract:    contract,
	})
	return tm, c
}

// connect attaches holder with the wallet already on the source chain
func connect(t *testing.T, tm *testMocks, c *session.Controller) {
	tm.provider.EXPECT().ChainID(gomock.Any()).Return("0x92", nil).AnyTimes()
	tm.provider.EXPECT().RequestAccounts(gomock.Any()).Return([]common.Address{holder}, nil)

	account, err := c.Connect(context.Background())
	require.NoError(t, err)
	require.Equal(t, holder, account)
}

func ids(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestConnect_SwitchesToSourceChain(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()

	tm.provider.EXPECT().RequestAccounts(gomock.Any()).Return([]common.Address{holder, other}, nil)
	gomock.InOrder(
		tm.provider.EXPECT().ChainID(gomock.Any()).Return("0x2105", nil),
		tm.provider.EXPECT().SwitchChain(gomock.Any(), "0x92").Return(nil),
		tm.provider.EXPECT().ChainID(gomock.Any()).Return("0x92", nil),
	)

	account, err := c.Connect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, holder, account)
	got, ok := c.Account()
	assert.True(t, ok)
	assert.Equal(t, holder, got)
	assert.Equal(t, "0x92", c.ChainID())
}

func TestConnect_Failures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(tm *testMocks)
		assert func(t *testing.T, err error)
	}{
		{
			name: "user rejects accounts",
			setup: func(tm *testMocks) {
				tm.provider.EXPECT().RequestAccounts(gomock.Any()).
					Return(nil, &wallet.ProviderError{Code: domain.WALLET_USER_REJECTED_CODE, Message: "User rejected the request."})
			},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrWalletRejected)
			},
		},
		{
			name: "no accounts",
			setup: func(tm *testMocks) {
				tm.provider.EXPECT().RequestAccounts(gomock.Any()).Return([]common.Address{}, nil)
			},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, session.ErrNoAccounts)
			},
		},
		{
			name: "user rejects chain switch",
			setup: func(tm *testMocks) {
				tm.provider.EXPECT().RequestAccounts(gomock.Any()).Return([]common.Address{holder}, nil)
				tm.provider.EXPECT().ChainID(gomock.Any()).Return("0x1", nil)
				tm.provider.EXPECT().SwitchChain(gomock.Any(), "0x92").
					Return(&wallet.ProviderError{Code: domain.WALLET_USER_REJECTED_CODE})
			},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrWalletRejected)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, c := setupTestController(t)
			defer tm.ctrl.Finish()
			tt.setup(tm)

			_, err := c.Connect(context.Background())

			tt.assert(t, err)
			_, ok := c.Account()
			assert.False(t, ok)
		})
	}
}

func TestScan_NotConnected(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()

	_, err := c.Scan(context.Background())

	assert.ErrorIs(t, err, session.ErrNotConnected)
}

func TestScan_CommitsAndPublishes(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	result := &ownership.Result{
		Owner:    holder,
		Balance:  big.NewInt(2),
		TokenIDs: ids(5, 12),
		Source:   domain.ScanSourceLogScan,
	}
	items := []domain.MothItem{
		{TokenID: "5", Name: "Midnight Moth #5"},
		{TokenID: "12", Name: "Midnight Moth #12"},
	}

	tm.resolver.EXPECT().Resolve(gomock.Any(), holder).Return(result, nil)
	tm.previews.EXPECT().LoadPreviews(gomock.Any(), result.TokenIDs).Return(items)

	var published *domain.OwnershipSnapshot
	tm.publisher.EXPECT().PublishSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, snapshot *domain.OwnershipSnapshot) error {
			published = snapshot
			return nil
		})

	outcome, err := c.Scan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, items, outcome.Items)
	assert.Same(t, result, outcome.Result)
	assert.NotEmpty(t, outcome.ScanID)
	assert.Equal(t, items, c.Items())

	require.NotNil(t, published)
	assert.Equal(t, outcome.ScanID, published.ScanID)
	assert.Equal(t, domain.ChainSonic, published.Chain)
	assert.Equal(t, contract.Hex(), published.Contract)
	assert.Equal(t, []string{"5", "12"}, published.TokenIDs)
	assert.Equal(t, now, published.ScannedAt)

	selected, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, "5", selected.TokenID)
}

func TestScan_EmptyBalanceSkipsPreviews(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.resolver.EXPECT().Resolve(gomock.Any(), holder).Return(&ownership.Result{
		Owner:   holder,
		Balance: big.NewInt(0),
		Source:  domain.ScanSourceNone,
	}, nil)
	tm.publisher.EXPECT().PublishSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := c.Scan(context.Background())

	require.NoError(t, err)
	assert.Empty(t, outcome.Items)
	assert.Empty(t, c.Items())
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestScan_PublishFailureDoesNotFailScan(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.resolver.EXPECT().Resolve(gomock.Any(), holder).Return(&ownership.Result{
		Owner:    holder,
		Balance:  big.NewInt(1),
		TokenIDs: ids(3),
		Source:   domain.ScanSourceEnumeration,
	}, nil)
	tm.previews.EXPECT().LoadPreviews(gomock.Any(), gomock.Any()).Return([]domain.MothItem{{TokenID: "3"}})
	tm.publisher.EXPECT().PublishSnapshot(gomock.Any(), gomock.Any()).Return(errors.New("no responders"))

	outcome, err := c.Scan(context.Background())

	require.NoError(t, err)
	assert.Len(t, outcome.Items, 1)
}

func TestScan_ResolveFailureKeepsDisplayedSet(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.tracker.Append(holder, domain.MothItem{TokenID: "1"})
	tm.resolver.EXPECT().Resolve(gomock.Any(), holder).
		Return(nil, &domain.ScanError{Op: "height", Err: errors.New("timeout")})

	_, err := c.Scan(context.Background())

	assert.ErrorIs(t, err, domain.ErrEndpointUnavailable)
	assert.Equal(t, []domain.MothItem{{TokenID: "1"}}, c.Items())
}

func TestScan_NewerScanWins(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	older := &ownership.Result{Owner: holder, Balance: big.NewInt(1), TokenIDs: ids(1), Source: domain.ScanSourceLogScan}
	newer := &ownership.Result{Owner: holder, Balance: big.NewInt(1), TokenIDs: ids(2), Source: domain.ScanSourceLogScan}

	var newerErr error
	gomock.InOrder(
		tm.resolver.EXPECT().Resolve(gomock.Any(), holder).
			DoAndReturn(func(ctx context.Context, owner common.Address) (*ownership.Result, error) {
				// A second scan starts and finishes while the first is still resolving
				_, newerErr = c.Scan(ctx)
				return older, nil
			}),
		tm.resolver.EXPECT().Resolve(gomock.Any(), holder).Return(newer, nil),
	)
	tm.previews.EXPECT().LoadPreviews(gomock.Any(), newer.TokenIDs).Return([]domain.MothItem{{TokenID: "2"}})
	tm.previews.EXPECT().LoadPreviews(gomock.Any(), older.TokenIDs).Return([]domain.MothItem{{TokenID: "1"}})
	tm.publisher.EXPECT().PublishSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := c.Scan(context.Background())

	require.NoError(t, newerErr)
	assert.ErrorIs(t, err, domain.ErrSuperseded)
	assert.Equal(t, []domain.MothItem{{TokenID: "2"}}, c.Items())
}

func TestScan_AccountChangeSupersedes(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.resolver.EXPECT().Resolve(gomock.Any(), holder).
		DoAndReturn(func(ctx context.Context, owner common.Address) (*ownership.Result, error) {
			tm.onAccounts([]common.Address{other})
			return &ownership.Result{Owner: holder, Balance: big.NewInt(1), TokenIDs: ids(4), Source: domain.ScanSourceLogScan}, nil
		})
	tm.previews.EXPECT().LoadPreviews(gomock.Any(), gomock.Any()).Return([]domain.MothItem{{TokenID: "4"}})

	_, err := c.Scan(context.Background())

	assert.ErrorIs(t, err, domain.ErrSuperseded)
	account, ok := c.Account()
	assert.True(t, ok)
	assert.Equal(t, other, account)
	assert.Empty(t, c.Items())
	_, displayed := tm.tracker.Snapshot(holder)
	assert.False(t, displayed)
}

func TestAddManual_RejectsInvalidInputWithoutCalls(t *testing.T) {
	for _, input := range []string{"abc", "-1", "", "1.5"} {
		t.Run(input, func(t *testing.T) {
			tm, c := setupTestController(t)
			defer tm.ctrl.Finish()

			_, err := c.AddManual(context.Background(), input)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAddManual_NotConnected(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()

	_, err := c.AddManual(context.Background(), "7")

	assert.ErrorIs(t, err, session.ErrNotConnected)
}

func TestAddManual_NotOwned(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.resolver.EXPECT().IsOwner(gomock.Any(), big.NewInt(7), holder).Return(false, nil)

	_, err := c.AddManual(context.Background(), "7")

	assert.ErrorIs(t, err, domain.ErrNotOwned)
	assert.Empty(t, c.Items())
}

func TestAddManual_VerificationFails(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.resolver.EXPECT().IsOwner(gomock.Any(), big.NewInt(7), holder).
		Return(false, &domain.VerificationError{TokenID: "7", Err: errors.New("execution reverted")})

	_, err := c.AddManual(context.Background(), "7")

	assert.ErrorIs(t, err, domain.ErrVerificationFailure)
}

func TestAddManual_PrependsAndSelects(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.tracker.Append(holder, domain.MothItem{TokenID: "5"})
	tm.resolver.EXPECT().IsOwner(gomock.Any(), big.NewInt(9), holder).Return(true, nil).Times(2)
	tm.previews.EXPECT().LoadPreview(gomock.Any(), big.NewInt(9)).
		Return(domain.MothItem{TokenID: "9", Name: "Midnight Moth #9"}).Times(2)

	item, err := c.AddManual(context.Background(), "0x9")
	require.NoError(t, err)
	assert.Equal(t, "9", item.TokenID)

	// Adding the same token again leaves the set untouched
	_, err = c.AddManual(context.Background(), " 9 ")
	require.NoError(t, err)

	assert.Equal(t, []domain.MothItem{
		{TokenID: "9", Name: "Midnight Moth #9"},
		{TokenID: "5"},
	}, c.Items())
	selected, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, "9", selected.TokenID)
}

func TestSelect(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()
	connect(t, tm, c)

	tm.tracker.Append(holder, domain.MothItem{TokenID: "5"})
	tm.tracker.Append(holder, domain.MothItem{TokenID: "8"})

	require.NoError(t, c.Select("5"))
	selected, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, "5", selected.TokenID)

	assert.ErrorIs(t, c.Select("6"), domain.ErrValidation)
}

func TestAccountsChanged(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()

	// Ignored before Connect
	tm.onAccounts([]common.Address{other})
	_, ok := c.Account()
	assert.False(t, ok)

	connect(t, tm, c)
	tm.tracker.Append(holder, domain.MothItem{TokenID: "5"})

	// Same account keeps the displayed set
	tm.onAccounts([]common.Address{holder})
	assert.Len(t, c.Items(), 1)

	tm.onAccounts(nil)
	_, ok = c.Account()
	assert.False(t, ok)
	assert.Nil(t, c.Items())
	_, displayed := tm.tracker.Snapshot(holder)
	assert.False(t, displayed)
}

func TestChainChanged(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()

	tm.onChain("0x2105")

	assert.Equal(t, "0x2105", c.ChainID())
}

func TestClose_UnsubscribesOnce(t *testing.T) {
	tm, c := setupTestController(t)
	defer tm.ctrl.Finish()

	c.Close()
	c.Close()

	assert.Equal(t, 2, tm.unsubscribed)
}
