package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/marketplace-product-extractor/internal/database"
	"github.com/maltedev/marketplace-product-extractor/internal/extractor"
	"github.com/maltedev/marketplace-product-extractor/internal/fetcher"
	"github.com/maltedev/marketplace-product-extractor/internal/models"
	"github.com/maltedev/marketplace-product-extractor/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouterWithStore(t, nil)
}

func newTestRouterWithStore(t *testing.T, store RecordStore) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(
		fetcher.New(time.Second, nil),
		extractor.New(extractor.DefaultSelectors()),
		nil,
		nil,
		logger,
	)
	return NewRouter(NewHandlers(svc, store, logger))
}

// fakeStore backs the stored-record endpoints in tests.
type fakeStore struct {
	records []*database.StoredRecord
}

func (f *fakeStore) GetRecord(_ context.Context, id uuid.UUID) (*database.StoredRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, database.ErrRecordNotFound
}

func (f *fakeStore) GetRecordByURL(_ context.Context, url string) (*database.StoredRecord, error) {
	for _, r := range f.records {
		if r.URL == url {
			return r, nil
		}
	}
	return nil, database.ErrRecordNotFound
}

func (f *fakeStore) ListRecords(_ context.Context, limit int) ([]*database.StoredRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExtractFromSuppliedHTML(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/extract", ExtractRequest{
		URL: "https://market.example/item/42",
		HTML: `<html><body>
			<h1 class="product-title">Desk Lamp</h1>
			<div class="product-price"><span class="price-integer">15</span><span class="price-decimal">99</span></div>
		</body></html>`,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var record models.ProductRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))

	assert.Equal(t, "https://market.example/item/42", record.URL)
	require.NotNil(t, record.Name)
	assert.Equal(t, "Desk Lamp", *record.Name)
	require.NotNil(t, record.Price)
	assert.InDelta(t, 15.99, *record.Price, 0.0001)
	assert.NotNil(t, record.Images)
	assert.Empty(t, record.Images)
}

func TestExtractRequiresURL(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/extract", ExtractRequest{HTML: "<html></html>"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRecords(t *testing.T) {
	record := models.NewProductRecord("https://market.example/item/42")
	store := &fakeStore{records: []*database.StoredRecord{
		{ID: uuid.New(), URL: record.URL, Record: record},
	}}
	router := newTestRouterWithStore(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []*database.StoredRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, record.URL, listed[0].URL)
}

func TestGetRecordByURLQuery(t *testing.T) {
	record := models.NewProductRecord("https://market.example/item/42")
	store := &fakeStore{records: []*database.StoredRecord{
		{ID: uuid.New(), URL: record.URL, Record: record},
	}}
	router := newTestRouterWithStore(t, store)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?url="+url.QueryEscape(record.URL), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got database.StoredRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, record.URL, got.URL)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products?url=https%3A%2F%2Fmarket.example%2Funknown", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecordByID(t *testing.T) {
	record := models.NewProductRecord("https://market.example/item/42")
	id := uuid.New()
	store := &fakeStore{records: []*database.StoredRecord{
		{ID: id, URL: record.URL, Record: record},
	}}
	router := newTestRouterWithStore(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.New().String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoredRecordEndpointsWithoutStore(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
