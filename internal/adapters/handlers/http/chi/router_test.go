package chi_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"
	"webapp/internal/adapters/eventbroker"
	"webapp/internal/adapters/handlers/http/chi"
	filehandler "webapp/internal/adapters/handlers/http/chi/v1/file"
	"webapp/internal/adapters/handlers/http/chi/v1/health"
	"webapp/internal/adapters/metrics"
	"webapp/internal/adapters/repository"
	"webapp/internal/adapters/storage"
	"webapp/internal/core/domain"
	"webapp/internal/core/service/file"
	"webapp/internal/core/service/healthcheck"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type app struct {
	handler    http.Handler
	fileRepo   *repository.MockFileRepository
	healthRepo *repository.MockHealthCheckRepository
	storage    *storage.MockStorage
	publisher  *eventbroker.MockPublisher
	registry   *prometheus.Registry
}

func newApp() app {
	fileRepo := repository.NewMockFileRepository()
	healthRepo := repository.NewMockHealthCheckRepository()
	store := storage.NewMockStorage()
	publisher := eventbroker.NewMockPublisher()
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	fileService := file.NewFileService(fileRepo, store, publisher, discardLogger)
	healthService := healthcheck.NewHealthCheckService(healthRepo, discardLogger)

	handler := chi.NewRouter(
		discardLogger,
		health.NewHealthHandlerV1(healthService, discardLogger),
		filehandler.NewFileHandlerV1(fileService, discardLogger),
		recorder,
		chi.Options{RequestTimeout: 5 * time.Second, MaxBodySize: 1 << 20, MaxMemory: 1 << 16},
	)

	return app{
		handler:    handler,
		fileRepo:   fileRepo,
		healthRepo: healthRepo,
		storage:    store,
		publisher:  publisher,
		registry:   registry,
	}
}

func (a app) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a app) assertNoStoreCalls(t *testing.T) {
	t.Helper()
	a.storage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	a.storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	a.fileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	a.fileRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	a.fileRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	a.healthRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func uploadRequest(t *testing.T, fileName, contentType string, extra map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)

	for name, value := range extra {
		require.NoError(t, mw.WriteField(name, value))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/file", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func expectedRecord() *domain.FileRecord {
	id := uuid.New()
	return &domain.FileRecord{
		ID:         id,
		FileName:   "validImage.png",
		FilePath:   domain.FilePath("test-bucket", id.String()+".png"),
		MimeType:   "image/png",
		Size:       8,
		UploadDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func assertNoCacheHeaders(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "close", w.Header().Get("Connection"))
}

func TestRouter_DisallowedHeaderIsRejectedBeforeAnyCall(t *testing.T) {
	requests := map[string]func() *http.Request{
		"health": func() *http.Request { return httptest.NewRequest(http.MethodGet, "/healthz", nil) },
		"upload": func() *http.Request { return uploadRequest(t, "validImage.png", "image/png", nil) },
		"get":    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/file/"+uuid.NewString(), nil) },
		"delete": func() *http.Request { return httptest.NewRequest(http.MethodDelete, "/file/"+uuid.NewString(), nil) },
	}

	for name, build := range requests {
		t.Run(name, func(t *testing.T) {
			// Arrange
			a := newApp()
			req := build()
			req.Header.Set("X-Custom-Header", "anything")

			// Act
			w := a.serve(req)

			// Assert
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, w.Body.Len())
			assertNoCacheHeaders(t, w)
			a.assertNoStoreCalls(t)
		})
	}
}

func TestRouter_HeadIsMethodNotAllowed(t *testing.T) {
	for _, path := range []string{"/healthz", "/file", "/file/" + uuid.NewString()} {
		t.Run(path, func(t *testing.T) {
			a := newApp()

			w := a.serve(httptest.NewRequest(http.MethodHead, path, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Zero(t, w.Body.Len())
			assertNoCacheHeaders(t, w)
			a.assertNoStoreCalls(t)
		})
	}
}

func TestRouter_WrongVerbIsMethodNotAllowed(t *testing.T) {
	a := newApp()

	cases := []struct{ method, path string }{
		{http.MethodPost, "/healthz"},
		{http.MethodPut, "/healthz"},
		{http.MethodGet, "/file"},
		{http.MethodDelete, "/file"},
		{http.MethodPatch, "/file/" + uuid.NewString()},
		{http.MethodOptions, "/file/" + uuid.NewString()},
	}
	for _, c := range cases {
		w := a.serve(httptest.NewRequest(c.method, c.path, nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", c.method, c.path)
	}
	expected := fmt.Sprintf(`
# HELP webapp_method_not_allowed_total Requests answered with 405.
# TYPE webapp_method_not_allowed_total counter
webapp_method_not_allowed_total %d
`, len(cases))
	require.NoError(t, testutil.GatherAndCompare(a.registry, strings.NewReader(expected), "webapp_method_not_allowed_total"))
}

func TestRouter_UnknownPathIsNotFound(t *testing.T) {
	a := newApp()

	w := a.serve(httptest.NewRequest(http.MethodGet, "/files", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, w.Body.Len())
	assertNoCacheHeaders(t, w)
}

func TestRouter_UploadSuccess(t *testing.T) {
	// Arrange
	a := newApp()
	var putKey string
	a.storage.On("PutObject", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(8), "image/png").
		Run(func(args mock.Arguments) { putKey = args.String(1) }).
		Return(nil)
	created := &domain.FileRecord{}
	a.fileRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.FileRecord")).
		Run(func(args mock.Arguments) {
			*created = args.Get(1).(domain.FileRecord)
			created.UploadDate = time.Now().UTC()
		}).
		Return(created, nil)

	// Act
	w := a.serve(uploadRequest(t, "validImage.png", "image/png", nil))

	// Assert
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assertNoCacheHeaders(t, w)

	var resp filehandler.V1FileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "validImage.png", resp.FileName)
	assert.True(t, strings.HasPrefix(resp.URL, "test-bucket/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".png"))
	assert.Equal(t, "test-bucket/"+putKey, resp.URL)
	assert.Equal(t, "image/png", created.MimeType)
}

func TestRouter_UploadWithExtraFieldIsRejected(t *testing.T) {
	a := newApp()

	w := a.serve(uploadRequest(t, "validImage.png", "image/png", map[string]string{"mimetype": "image/png"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	a.assertNoStoreCalls(t)
}

func TestRouter_UploadPdfIsRejected(t *testing.T) {
	a := newApp()

	w := a.serve(uploadRequest(t, "document.pdf", "application/pdf", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, w.Body.Len())
	a.assertNoStoreCalls(t)
}

func TestRouter_UploadStorageFailure(t *testing.T) {
	// Arrange
	a := newApp()
	a.storage.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bucket unreachable"))

	// Act
	w := a.serve(uploadRequest(t, "validImage.png", "image/png", nil))

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Zero(t, w.Body.Len())
	a.fileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRouter_UploadMetadataFailureDeletesPutKey(t *testing.T) {
	// Arrange
	a := newApp()
	var putKey string
	a.storage.On("PutObject", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { putKey = args.String(1) }).
		Return(nil)
	a.fileRepo.On("Create", mock.Anything, mock.Anything).Return((*domain.FileRecord)(nil), errors.New("db down"))
	a.storage.On("DeleteObject", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	// Act
	w := a.serve(uploadRequest(t, "validImage.png", "image/png", nil))

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	a.storage.AssertNumberOfCalls(t, "DeleteObject", 1)
	a.storage.AssertCalled(t, "DeleteObject", mock.Anything, putKey)
}

func TestRouter_GetMissingFile(t *testing.T) {
	// Arrange
	a := newApp()
	id := uuid.New()
	a.fileRepo.On("FindByID", mock.Anything, id).Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)

	// Act
	w := a.serve(httptest.NewRequest(http.MethodGet, "/file/"+id.String(), nil))

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, w.Body.Len())
	a.storage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	a.storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestRouter_GetWithQueryIsRejected(t *testing.T) {
	a := newApp()

	w := a.serve(httptest.NewRequest(http.MethodGet, "/file/"+uuid.NewString()+"?download=1", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	a.assertNoStoreCalls(t)
}

func TestRouter_GetWithBodyIsRejected(t *testing.T) {
	a := newApp()

	w := a.serve(httptest.NewRequest(http.MethodGet, "/file/"+uuid.NewString(), strings.NewReader(`{"a":1}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	a.assertNoStoreCalls(t)
}

func TestRouter_GetNonUUIDIsNotFound(t *testing.T) {
	a := newApp()

	w := a.serve(httptest.NewRequest(http.MethodGet, "/file/not-a-uuid", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	a.assertNoStoreCalls(t)
}

func TestRouter_DeleteOrderAndIdempotence(t *testing.T) {
	// Arrange
	a := newApp()
	record := expectedRecord()

	var calls []string
	a.fileRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil).Once()
	a.fileRepo.On("FindByID", mock.Anything, record.ID).Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)
	a.storage.On("DeleteObject", mock.Anything, record.StorageKey()).
		Run(func(mock.Arguments) { calls = append(calls, "blob") }).
		Return(nil).Once()
	a.fileRepo.On("Delete", mock.Anything, record.ID).
		Run(func(mock.Arguments) { calls = append(calls, "record") }).
		Return(nil).Once()

	// Act
	first := a.serve(httptest.NewRequest(http.MethodDelete, "/file/"+record.ID.String(), nil))
	second := a.serve(httptest.NewRequest(http.MethodDelete, "/file/"+record.ID.String(), nil))

	// Assert
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Zero(t, first.Body.Len())
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Equal(t, []string{"blob", "record"}, calls)
}

func TestRouter_DeleteBlobFailureKeepsRecord(t *testing.T) {
	// Arrange
	a := newApp()
	record := expectedRecord()
	a.fileRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	a.storage.On("DeleteObject", mock.Anything, record.StorageKey()).Return(errors.New("denied"))

	// Act
	w := a.serve(httptest.NewRequest(http.MethodDelete, "/file/"+record.ID.String(), nil))

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	a.fileRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRouter_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		a := newApp()
		a.healthRepo.On("Create", mock.Anything).Return(&domain.HealthCheck{ID: 1}, nil)

		w := a.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, w.Body.Len())
		assertNoCacheHeaders(t, w)
	})

	t.Run("database down", func(t *testing.T) {
		a := newApp()
		a.healthRepo.On("Create", mock.Anything).Return((*domain.HealthCheck)(nil), errors.New("db down"))

		w := a.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Zero(t, w.Body.Len())
	})

	t.Run("query", func(t *testing.T) {
		a := newApp()

		w := a.serve(httptest.NewRequest(http.MethodGet, "/healthz?check=db", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		a.assertNoStoreCalls(t)
	})
}

func TestRouter_PanicIsServiceUnavailable(t *testing.T) {
	// Arrange
	a := newApp()
	a.healthRepo.On("Create", mock.Anything).
		Run(func(mock.Arguments) { panic("boom") }).
		Return((*domain.HealthCheck)(nil), nil)

	// Act
	w := a.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assertNoCacheHeaders(t, w)
}
