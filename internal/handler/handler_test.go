package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-service/pkg/apperr"
)

func newTestContext(t *testing.T, method, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing tenant",
			err:        apperr.ErrMissingTenant,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "operation requires a tenant",
		},
		{
			name:       "not found hides the detail",
			err:        apperr.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "resource not found",
		},
		{
			name:       "validation passes the message through",
			err:        apperr.Validation("amount must be greater than 0"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "amount must be greater than 0",
		},
		{
			name:       "constraint passes the message through",
			err:        &apperr.ConstraintError{Message: "a record with the same value already exists"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "a record with the same value already exists",
		},
		{
			name:       "unclassified is suppressed outside development",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodGet, "/api/levels/1")
			require.NoError(t, respondError(c, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeErrorBody(t, rec)
			assert.Equal(t, tt.wantStatus, body.StatusCode)
			assert.Equal(t, "/api/levels/1", body.Path)
			assert.Equal(t, http.MethodGet, body.Method)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.NotEmpty(t, body.Timestamp)
		})
	}
}

func TestRespondErrorDevelopment(t *testing.T) {
	development = true
	defer func() { development = false }()

	c, rec := newTestContext(t, http.MethodPost, "/api/companies")
	require.NoError(t, respondError(c, errors.New("pq: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "pq: connection refused", decodeErrorBody(t, rec).Message)
}

func TestPathID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("42")

	id, err := pathID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.SetParamValues("abc")
	_, err = pathID(c)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestQueryHelpers(t *testing.T) {
	assert.Equal(t, 10, atoiOr("", 10))
	assert.Equal(t, 10, atoiOr("junk", 10))
	assert.Equal(t, 3, atoiOr("3", 10))

	assert.Nil(t, intQueryPtr(""))
	assert.Nil(t, intQueryPtr("junk"))
	if v := intQueryPtr("-2"); assert.NotNil(t, v) {
		assert.Equal(t, -2, *v)
	}

	assert.Nil(t, uintQueryPtr("-1"))
	if v := uintQueryPtr("7"); assert.NotNil(t, v) {
		assert.Equal(t, uint(7), *v)
	}
}
