package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/services/auth"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: bad uid", model.ErrInvalidParameter), http.StatusBadRequest},
		{model.ErrEntryNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: Nobody-0", model.ErrRoundNotFound), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: Adrian-0", model.ErrCapacityExceeded), http.StatusConflict},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{NewPayloadTooLargeError(), http.StatusRequestEntityTooLarge},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, Status(tc.err), tc.err.Error())
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("%w: Adrian-0 (5/5)", model.ErrCapacityExceeded))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeCapacityExceeded, body.Error.Code)
	assert.Contains(t, body.Error.Message, "Adrian-0")
}

func TestUnauthorizedAsksForBasicAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NewUnauthorizedError())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
}

func TestInternalErrorsHideDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("redis: connection refused"))

	assert.NotContains(t, rec.Body.String(), "redis")
}
