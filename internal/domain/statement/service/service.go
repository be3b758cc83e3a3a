// Package service orchestrates the extraction pipeline: render pages,
// locate the transaction section, chunk it into candidates, recognize
// and coerce each candidate, and aggregate the validated records in
// document order.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stmtx/statement-extractor/internal/domain/statement"
	"github.com/stmtx/statement-extractor/internal/domain/statement/chunker"
	"github.com/stmtx/statement-extractor/internal/domain/statement/coercer"
	"github.com/stmtx/statement-extractor/internal/domain/statement/locator"
	"github.com/stmtx/statement-extractor/internal/domain/statement/recognizer"
	"github.com/stmtx/statement-extractor/pkg/metrics"
	"github.com/stmtx/statement-extractor/pkg/pdftext"
)

var tracer = otel.Tracer("statement-extractor/statement")

// Renderer turns document bytes into per-page renderings. pdftext
// implements it for PDFs; tests substitute fakes.
type Renderer interface {
	Render(data []byte) ([]pdftext.Page, error)
}

// ExtractResult is the outcome of one document extraction. Records are
// ordered by page, then by within-page discovery order.
type ExtractResult struct {
	Records  []statement.TransactionRecord
	Status   statement.Status
	Pages    int
	Rejected int
}

// Service runs the extraction pipeline. It holds no per-request state,
// so concurrent requests are safe; within one request pages are
// processed strictly in sequence.
type Service struct {
	renderer   Renderer
	locator    *locator.Locator
	chunker    *chunker.Chunker
	recognizer *recognizer.Recognizer
	coercer    *coercer.Coercer
	logger     *slog.Logger
}

// New wires the pipeline for one marker set.
func New(renderer Renderer, markers locator.MarkerSet, opts coercer.Options, logger *slog.Logger) *Service {
	return &Service{
		renderer:   renderer,
		locator:    locator.New(markers),
		chunker:    chunker.New(markers.Keywords()),
		recognizer: recognizer.New(markers),
		coercer:    coercer.New(markers, opts),
		logger:     logger,
	}
}

// Extract processes one uploaded document. It returns
// statement.ErrUnreadableDocument when the bytes cannot be opened as a
// PDF. Everything narrower, such as a page without the section or a
// candidate that fails recognition or coercion, is swallowed at the
// narrowest scope and only reflected in the rejected counter.
func (s *Service) Extract(ctx context.Context, data []byte) (*ExtractResult, error) {
	_, span := tracer.Start(ctx, "statement.extract")
	defer span.End()

	start := time.Now()
	defer func() { metrics.ExtractDuration.Observe(time.Since(start).Seconds()) }()

	pages, err := s.renderer.Render(data)
	if err != nil {
		metrics.DocumentsProcessed.WithLabelValues("unreadable").Inc()
		return nil, fmt.Errorf("%w: %v", statement.ErrUnreadableDocument, err)
	}

	result := &ExtractResult{
		Records: make([]statement.TransactionRecord, 0, 16),
		Pages:   len(pages),
	}

	for _, page := range pages {
		metrics.PagesScanned.Inc()
		s.extractPage(page, result)
	}

	result.Status = statement.StatusNotFound
	if len(result.Records) > 0 {
		result.Status = statement.StatusFound
	}

	metrics.DocumentsProcessed.WithLabelValues(string(result.Status)).Inc()
	span.SetAttributes(
		attribute.Int("statement.pages", result.Pages),
		attribute.Int("statement.records", len(result.Records)),
		attribute.Int("statement.rejected", result.Rejected),
	)
	s.logger.Info("document extracted",
		slog.Int("pages", result.Pages),
		slog.Int("records", len(result.Records)),
		slog.Int("rejected", result.Rejected),
		slog.String("status", string(result.Status)),
	)
	return result, nil
}

// extractPage runs the per-page pipeline and appends validated records
// in discovery order. Pages without the section marker contribute
// nothing.
func (s *Service) extractPage(page pdftext.Page, result *ExtractResult) {
	content := pageContent(page)
	if !s.locator.ContainsSection(page.Text) && !s.locator.ContainsSection(content) {
		return
	}

	sub := s.locator.Locate(content)
	for _, candidate := range s.chunker.Split(sub) {
		raw, ok := s.recognizer.Recognize(candidate)
		if !ok {
			result.Rejected++
			metrics.CandidatesRejected.Inc()
			continue
		}
		record, err := s.coercer.Coerce(raw)
		if err != nil {
			result.Rejected++
			metrics.CandidatesRejected.Inc()
			s.logger.Debug("candidate rejected",
				slog.Int("page", page.Number),
				slog.String("reason", err.Error()),
			)
			continue
		}
		result.Records = append(result.Records, record)
		metrics.RecordsExtracted.Inc()
	}
}

// pageContent prefers the word-grid rows when the renderer produced
// them: the grid preserves cell boundaries and embedded cell line
// breaks that the plain text rendering can lose. The plain text remains
// the correctness path when no grid is available.
func pageContent(page pdftext.Page) string {
	if len(page.Rows) == 0 {
		return page.Text
	}
	var b strings.Builder
	for i, row := range page.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, " "))
	}
	return b.String()
}
