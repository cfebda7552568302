package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]any{"status": "healthy"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"status": "healthy"}, resp.Data)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(rec *httptest.ResponseRecorder)
		status int
		code   string
	}{
		{"bad request", func(r *httptest.ResponseRecorder) { BadRequest(r, "bad", "details") }, 400, "BAD_REQUEST"},
		{"not found", func(r *httptest.ResponseRecorder) { NotFound(r, "missing") }, 404, "NOT_FOUND"},
		{"conflict", func(r *httptest.ResponseRecorder) { Conflict(r, "busy") }, 409, "CONFLICT"},
		{"method not allowed", func(r *httptest.ResponseRecorder) { MethodNotAllowed(r) }, 405, "METHOD_NOT_ALLOWED"},
		{"internal", func(r *httptest.ResponseRecorder) { InternalError(r, "boom") }, 500, "INTERNAL_ERROR"},
		{"unavailable", func(r *httptest.ResponseRecorder) { ServiceUnavailable(r, "later") }, 503, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.status, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
