// Package metrics exposes the Prometheus collectors for the extraction
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsProcessed counts uploaded documents by outcome
	// (found, not_found, unreadable).
	DocumentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "extractor_documents_processed_total",
		Help: "Documents processed, labelled by outcome.",
	}, []string{"outcome"})

	// PagesScanned counts statement pages rendered and scanned.
	PagesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extractor_pages_scanned_total",
		Help: "Statement pages scanned for the transaction section.",
	})

	// RecordsExtracted counts validated transaction records.
	RecordsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extractor_records_extracted_total",
		Help: "Transaction records extracted and validated.",
	})

	// CandidatesRejected counts candidate chunks dropped during
	// recognition or coercion.
	CandidatesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extractor_candidates_rejected_total",
		Help: "Candidate chunks rejected by recognition or coercion.",
	})

	// ExtractDuration observes end-to-end extraction latency.
	ExtractDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "extractor_extract_duration_seconds",
		Help:    "End-to-end document extraction duration.",
		Buckets: prometheus.DefBuckets,
	})
)
