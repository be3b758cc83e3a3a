package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmtx/statement-extractor/internal/domain/statement/coercer"
	"github.com/stmtx/statement-extractor/internal/domain/statement/locator"
	"github.com/stmtx/statement-extractor/internal/domain/statement/service"
	"github.com/stmtx/statement-extractor/pkg/pdftext"
)

type fakeRenderer struct {
	pages []pdftext.Page
	err   error
}

func (f *fakeRenderer) Render(_ []byte) ([]pdftext.Page, error) {
	return f.pages, f.err
}

func newTestServer(t *testing.T, r service.Renderer) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc := service.New(r, locator.DefaultMarkers(), coercer.Options{}, logger)
	h := New(svc, 1<<20, logger)

	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func uploadPDF(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "statement.pdf")
	require.NoError(t, err)
	_, err = fw.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

const statementPage = "交易-股票和股票期權 買賣 名稱 貨幣 數量 價格 金額 淨變動\n" +
	"買入開倉 ABC Corp (00001) HKD 100.50 2,000 201,000.00 -50.25\n小計"

func TestExtract_JSON(t *testing.T) {
	srv := newTestServer(t, &fakeRenderer{pages: []pdftext.Page{{Number: 1, Text: statementPage}}})

	resp := uploadPDF(t, srv.URL+"/v1/statements/extract", []byte("pdf"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got extractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotEmpty(t, got.RequestID)
	assert.Equal(t, "found", string(got.Status))
	require.Equal(t, 1, got.Count)

	rec := got.Records[0]
	assert.Equal(t, "ABC Corp (00001)", rec.InstrumentLabel)
	assert.Equal(t, int64(2000), rec.Quantity)
	assert.Contains(t, rec.Display.Price, "100.5000")
	assert.Equal(t, "-50.25", rec.Display.NetChange)
}

func TestExtract_NotFound(t *testing.T) {
	srv := newTestServer(t, &fakeRenderer{pages: []pdftext.Page{{Number: 1, Text: "利息及費用"}}})

	resp := uploadPDF(t, srv.URL+"/v1/statements/extract", []byte("pdf"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got extractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "not_found", string(got.Status))
	assert.Empty(t, got.Records)
}

func TestExtract_UnreadableDocument(t *testing.T) {
	srv := newTestServer(t, &fakeRenderer{err: pdftext.ErrUnreadable})

	resp := uploadPDF(t, srv.URL+"/v1/statements/extract", []byte("not a pdf"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Contains(t, got.Error, "could not read the document")
}

func TestExtract_MissingFileField(t *testing.T) {
	srv := newTestServer(t, &fakeRenderer{})

	resp, err := http.Post(srv.URL+"/v1/statements/extract",
		"application/x-www-form-urlencoded", strings.NewReader("nope"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtract_CSVDownload(t *testing.T) {
	srv := newTestServer(t, &fakeRenderer{pages: []pdftext.Page{{Number: 1, Text: statementPage}}})

	resp := uploadPDF(t, srv.URL+"/v1/statements/extract?format=csv", []byte("pdf"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "transactions.csv")

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Buy,ABC Corp (00001),HKD,2000,100.5000,201000.00,-50.25")
}

func TestExtract_XLSXDownload(t *testing.T) {
	srv := newTestServer(t, &fakeRenderer{pages: []pdftext.Page{{Number: 1, Text: statementPage}}})

	resp := uploadPDF(t, srv.URL+"/v1/statements/extract?format=xlsx", []byte("pdf"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "transactions.xlsx")
}
