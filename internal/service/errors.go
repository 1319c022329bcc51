package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrAnalysisInProgress rejects a refresh while the analysis is still
	// being generated.
	ErrAnalysisInProgress = errors.New("analysis is still in progress")

	// ErrMissingSearchData rejects a refresh of an analysis that never got
	// past its search phase.
	ErrMissingSearchData = errors.New("analysis has no stored search data to refresh from")

	// ErrReportNotComplete rejects chat and simplify requests against a
	// macro report that has not finished generating.
	ErrReportNotComplete = errors.New("macro report is not complete")

	// ErrNoActiveHoldings rejects a portfolio scan when there is nothing
	// to scan.
	ErrNoActiveHoldings = errors.New("no active holdings with tickers to scan")

	// ErrEmptyWatchlist rejects a watchlist scan with no active items.
	ErrEmptyWatchlist = errors.New("no active watchlist items to scan")

	// ErrTickerAlreadyWatched is returned on an explicit add of a ticker
	// the user already tracks.
	ErrTickerAlreadyWatched = errors.New("ticker is already on the watchlist")
)

// ErrScanInProgress carries the id of the scan that is already running so
// the caller can surface it alongside the conflict.
type ErrScanInProgress struct {
	ScanID string
}

func (e *ErrScanInProgress) Error() string {
	return fmt.Sprintf("a scan is already in progress: %s", e.ScanID)
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
