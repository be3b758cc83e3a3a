// Package handler exposes the extraction pipeline over HTTP: a
// multipart PDF upload in, a JSON record set or a CSV/XLSX download
// out. The response makes "could not read the document" and "read fine,
// nothing recognized" unmistakably distinct.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stmtx/statement-extractor/internal/domain/statement"
	"github.com/stmtx/statement-extractor/internal/domain/statement/export"
	"github.com/stmtx/statement-extractor/internal/domain/statement/service"
	"github.com/stmtx/statement-extractor/pkg/money"
)

// Handler handles statement extraction requests.
type Handler struct {
	svc            *service.Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// New creates a statement handler.
func New(svc *service.Service, maxUploadBytes int64, logger *slog.Logger) *Handler {
	return &Handler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Register mounts the statement routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/statements/extract", h.Extract)
}

// recordView is the JSON shape of one record, raw values plus the
// formatted strings the transactions table shows.
type recordView struct {
	statement.TransactionRecord
	Display displayView `json:"display"`
}

type displayView struct {
	Price     string `json:"price"`
	Amount    string `json:"amount"`
	NetChange string `json:"net_change"`
}

type extractResponse struct {
	RequestID string           `json:"request_id"`
	Status    statement.Status `json:"status"`
	Count     int              `json:"count"`
	Records   []recordView     `json:"records"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// Extract accepts a multipart upload under the "file" field, runs the
// extraction pipeline, and responds in the format selected by the
// ?format query parameter (json, csv or xlsx).
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With(slog.String("requestID", requestID))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, requestID, "upload a statement PDF in the \"file\" field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, requestID, "failed to read the uploaded file")
		return
	}

	logger.Info("extracting statement",
		slog.String("filename", header.Filename),
		slog.Int("sizeBytes", len(data)),
	)

	result, err := h.svc.Extract(r.Context(), data)
	if err != nil {
		if errors.Is(err, statement.ErrUnreadableDocument) {
			writeError(w, http.StatusBadRequest, requestID,
				"could not read the document; please upload the PDF version of your statement")
			return
		}
		logger.Error("extraction failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, requestID, "extraction failed")
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		h.writeDownload(w, requestID, "transactions.csv", "text/csv", export.CSV, result)
	case "xlsx":
		h.writeDownload(w, requestID, "transactions.xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSX, result)
	default:
		writeJSON(w, http.StatusOK, buildResponse(requestID, result))
	}
}

func buildResponse(requestID string, result *service.ExtractResult) extractResponse {
	records := make([]recordView, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, recordView{
			TransactionRecord: rec,
			Display: displayView{
				Price:     export.DisplayPrice(rec),
				Amount:    export.DisplayAmount(rec),
				NetChange: money.FormatNetChange(rec.NetChange),
			},
		})
	}
	return extractResponse{
		RequestID: requestID,
		Status:    result.Status,
		Count:     len(records),
		Records:   records,
	}
}

func (h *Handler) writeDownload(
	w http.ResponseWriter,
	requestID, filename, contentType string,
	marshal func([]statement.TransactionRecord) ([]byte, error),
	result *service.ExtractResult,
) {
	out, err := marshal(result.Records)
	if err != nil {
		h.logger.Error("export failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, requestID, "export failed")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, requestID, msg string) {
	writeJSON(w, status, errorResponse{RequestID: requestID, Error: msg})
}
