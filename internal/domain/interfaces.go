package domain

import (
	"context"
	"time"
)

// HistoryProvider supplies the account's execution history for a reporting
// window, already merged across the exchange datasets, mapped into typed rows
// and sorted ascending by execution date.
type HistoryProvider interface {
	FetchRows(ctx context.Context, start, end time.Time) ([]ExecutionRow, error)
}

// JournalWriter persists a rendered journal document.
type JournalWriter interface {
	Write(timeframe Timeframe, title, content string) (string, error)
}
