package monitoring

import (
	"sync/atomic"
	"time"
)

var importRequestsTotal atomic.Uint64
var importRequestsFailed atomic.Uint64
var importRowsImported atomic.Int64
var importRowsRejected atomic.Int64
var importDurationMicrosTotal atomic.Uint64

type ImportStats struct {
	RequestsTotal uint64  `json:"requests_total"`
	FailedTotal   uint64  `json:"failed_total"`
	RowsImported  int64   `json:"rows_imported"`
	RowsRejected  int64   `json:"rows_rejected"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

// RecordImport counts one CSV import request. success is false when the
// request was rejected as a whole.
func RecordImport(imported, rejected int, duration time.Duration, success bool) {
	importRequestsTotal.Add(1)
	if !success {
		importRequestsFailed.Add(1)
	}
	if imported > 0 {
		importRowsImported.Add(int64(imported))
	}
	if rejected > 0 {
		importRowsRejected.Add(int64(rejected))
	}
	if duration > 0 {
		importDurationMicrosTotal.Add(uint64(duration / time.Microsecond))
	}
}

func getImportStats() ImportStats {
	total := importRequestsTotal.Load()
	avgDurationMS := 0.0
	if total > 0 {
		avgDurationMS = float64(importDurationMicrosTotal.Load()) / float64(total) / 1000.0
	}

	return ImportStats{
		RequestsTotal: total,
		FailedTotal:   importRequestsFailed.Load(),
		RowsImported:  importRowsImported.Load(),
		RowsRejected:  importRowsRejected.Load(),
		AvgDurationMS: avgDurationMS,
	}
}
