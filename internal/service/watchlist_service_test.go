package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/pkg/logger"
	"invest-research/pkg/utils"
)

const watchlistScanResponse = `{
	"evaluations": [
		{
			"ticker": "ASML",
			"currentPrice": 712.5,
			"priceChange7d": -3.2,
			"newsHeadline": "Q2 bookings beat expectations",
			"note": "Approaching target; bookings re-accelerated.",
			"targetHit": false,
			"urgency": "MEDIUM"
		},
		{
			"ticker": "UNKNOWN",
			"note": "Not on the list.",
			"urgency": "LOW"
		}
	],
	"summary": "One item approaching its target."
}`

type watchlistFixture struct {
	svc           WatchlistService
	watchlistRepo *fakeWatchlistRepo
	scanRepo      *fakeWatchlistScanRepo
	searchRepo    *fakeSearchRepo
	genRepo       *fakeGenRepo
}

func newWatchlistFixture() *watchlistFixture {
	f := &watchlistFixture{
		watchlistRepo: newFakeWatchlistRepo(),
		scanRepo:      newFakeWatchlistScanRepo(),
		searchRepo:    &fakeSearchRepo{},
		genRepo:       &fakeGenRepo{response: watchlistScanResponse},
	}
	f.svc = NewWatchlistService(testConfig(), logger.NewNop(), f.watchlistRepo, f.scanRepo, f.searchRepo, f.genRepo)
	return f
}

func (f *watchlistFixture) waitForScan(t *testing.T, id string, status string) *model.WatchlistScan {
	t.Helper()
	var found *model.WatchlistScan
	require.Eventually(t, func() bool {
		scan, err := f.scanRepo.FindByID(context.Background(), id)
		if err != nil || scan.Status != status {
			return false
		}
		found = scan
		return true
	}, 2*time.Second, 10*time.Millisecond)
	return found
}

func TestWatchlistService_Add(t *testing.T) {
	t.Run("normalizes ticker", func(t *testing.T) {
		f := newWatchlistFixture()

		item, err := f.svc.Add(context.Background(), &dto.WatchlistItemRequest{Ticker: "asml"})
		require.NoError(t, err)
		assert.Equal(t, "ASML", item.Ticker)
	})

	t.Run("duplicate ticker", func(t *testing.T) {
		f := newWatchlistFixture()
		_, err := f.svc.Add(context.Background(), &dto.WatchlistItemRequest{Ticker: "ASML"})
		require.NoError(t, err)

		_, err = f.svc.Add(context.Background(), &dto.WatchlistItemRequest{Ticker: "asml"})
		assert.ErrorIs(t, err, ErrTickerAlreadyWatched)
	})
}

func TestWatchlistService_Update(t *testing.T) {
	f := newWatchlistFixture()
	item, err := f.svc.Add(context.Background(), &dto.WatchlistItemRequest{Ticker: "ASML", CompanyName: "ASML Holding"})
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), item.ID, &dto.UpdateWatchlistItemRequest{
		TargetPrice: utils.ToPointer(650.0),
		Status:      utils.ToPointer(model.EntityStatusArchived),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.TargetPrice)
	assert.Equal(t, 650.0, *updated.TargetPrice)
	assert.Equal(t, model.EntityStatusArchived, updated.Status)
	// Untouched fields survive a partial update.
	assert.Equal(t, "ASML Holding", updated.CompanyName)
}

func TestWatchlistService_StartScan(t *testing.T) {
	t.Run("empty watchlist", func(t *testing.T) {
		f := newWatchlistFixture()
		_, err := f.svc.StartScan(context.Background())
		assert.ErrorIs(t, err, ErrEmptyWatchlist)
	})

	t.Run("archived items do not count", func(t *testing.T) {
		f := newWatchlistFixture()
		item, err := f.svc.Add(context.Background(), &dto.WatchlistItemRequest{Ticker: "ASML"})
		require.NoError(t, err)
		_, err = f.svc.Update(context.Background(), item.ID, &dto.UpdateWatchlistItemRequest{
			Status: utils.ToPointer(model.EntityStatusArchived),
		})
		require.NoError(t, err)

		_, err = f.svc.StartScan(context.Background())
		assert.ErrorIs(t, err, ErrEmptyWatchlist)
	})

	t.Run("running scan blocks a second one", func(t *testing.T) {
		f := newWatchlistFixture()
		_, err := f.svc.Add(context.Background(), &dto.WatchlistItemRequest{Ticker: "ASML"})
		require.NoError(t, err)
		existing := &model.WatchlistScan{UserID: model.DefaultUserID, Status: model.StatusInProgress}
		require.NoError(t, f.scanRepo.Create(context.Background(), existing))

		_, err = f.svc.StartScan(context.Background())
		var inProgress *ErrScanInProgress
		require.ErrorAs(t, err, &inProgress)
		assert.Equal(t, existing.ID, inProgress.ScanID)
	})

	t.Run("evaluations stamp items and unknown tickers are ignored", func(t *testing.T) {
		f := newWatchlistFixture()
		item, err := f.svc.Add(context.Background(), &dto.WatchlistItemRequest{
			Ticker:      "ASML",
			TargetPrice: utils.ToPointer(650.0),
		})
		require.NoError(t, err)

		started, err := f.svc.StartScan(context.Background())
		require.NoError(t, err)

		scan := f.waitForScan(t, started.ID, model.StatusComplete)
		assert.Equal(t, 2, scan.ItemsChecked)
		require.NotNil(t, scan.Summary)
		assert.NotEmpty(t, scan.RawSearchData)

		checked, err := f.watchlistRepo.FindByID(context.Background(), item.ID)
		require.NoError(t, err)
		require.NotNil(t, checked.LastChecked)
		require.NotNil(t, checked.LatestNote)
		assert.Contains(t, *checked.LatestNote, "Approaching target")
	})
}
