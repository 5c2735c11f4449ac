// Package tradestats computes profit and loss analytics from a ledger of
// trades.
//
// The pipeline is stateless and runs in a few stages:
//   - Ingestion: raw rows with loosely named columns are read into trade
//     records; rows without a usable date are dropped (see Ingest).
//   - Aggregation: trades are grouped per day and the pooled charges
//     (brokerage, statutory taxes, profit sharing) are apportioned to each
//     day by its share of the trades (see Aggregate).
//   - Statistics: a set of days gives ROI, drawdown, streaks, averages and
//     a monthly breakdown, on gross or net P&L (see ComputeStats).
//   - Filtering: a Session keeps the canonical days of a ledger and
//     analyses any subset selected by date range, weekday and month
//     without re-reading the ledger (see Session.ApplyFilter).
//
// Amounts are exact decimals; charges and settings never make an analysis
// fail, degenerate inputs give zero values.
package tradestats
