package lookup

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/config"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/output"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	rs := models.NewRecordSet()
	rs.Put("079208001234", sampleRecord())

	path := filepath.Join(t.TempDir(), "grades.json")
	require.NoError(t, output.WriteJSON(path, &models.Payload{LastUpdated: "2025-01-15 08:30:00", Records: rs}, true))

	s, err := NewServer(path, config.DefaultConfig().Lookup, zerolog.Nop())
	require.NoError(t, err)
	return s, path
}

func get(t *testing.T, h http.Handler, target string) (*http.Response, []byte) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, body
}

func TestServerRecord(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	res, body := get(t, h, "/api/records/079208001234")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "no-store", res.Header.Get("Cache-Control"))

	var rec models.Record
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, "Lê Thị Cúc", rec.String("Họ và tên"))
	assert.Equal(t, sampleRecord().Keys(), rec.Keys())
}

func TestServerRecordNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	res, body := get(t, s.Handler(), "/api/records/nope")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"Không tìm thấy mã định danh này."}`, string(body))
}

func TestServerRecordBlankID(t *testing.T) {
	s, _ := newTestServer(t)

	res, _ := get(t, s.Handler(), "/api/records/"+url.PathEscape(" "))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestServerView(t *testing.T) {
	s, _ := newTestServer(t)

	res, body := get(t, s.Handler(), "/api/records/079208001234/view")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var view View
	require.NoError(t, json.Unmarshal(body, &view))
	require.NotEmpty(t, view.Grades)
	assert.Equal(t, "Thường xuyên 1", view.Grades[0].Label)
}

func TestServerDocumentAndMeta(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	res, body := get(t, h, "/grades.json")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "no-store", res.Header.Get("Cache-Control"))
	var p models.Payload
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 1, p.Records.Len())

	res, body = get(t, h, "/api/meta")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"last_updated":"2025-01-15 08:30:00","records":1}`, string(body))

	res, _ = get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServerReload(t *testing.T) {
	s, path := newTestServer(t)

	rs := models.NewRecordSet()
	rec := models.NewRecord()
	rec.Set("Mã định danh", "42")
	rs.Put("42", rec)
	require.NoError(t, output.WriteJSON(path, &models.Payload{LastUpdated: "2025-02-01 00:00:00", Records: rs}, false))
	require.NoError(t, s.Reload())

	h := s.Handler()
	res, _ := get(t, h, "/api/records/42")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = get(t, h, "/api/records/079208001234")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestServerReloadKeepsPreviousOnError(t *testing.T) {
	s, path := newTestServer(t)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	assert.Error(t, s.Reload())
	res, _ := get(t, s.Handler(), "/api/records/079208001234")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestNewServerMissingFile(t *testing.T) {
	_, err := NewServer(filepath.Join(t.TempDir(), "missing.json"), config.LookupConfig{}, zerolog.Nop())
	assert.Error(t, err)
}
