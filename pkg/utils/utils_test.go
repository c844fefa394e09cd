package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	tc := []struct {
		raw     any
		want    int64
		wantErr bool
	}{
		{raw: float64(3), want: 3},
		{raw: float64(2.9), want: 2},
		{raw: float64(-4), want: -4},
		{raw: "7", want: 7},
		{raw: " 5.5 ", want: 5},
		{raw: float64(1e20), want: math.MaxInt64},
		{raw: float64(-1e20), want: math.MinInt64},
		{raw: "99999999999999999999", want: math.MaxInt64},
		{raw: "-1e400", want: math.MinInt64},
		{raw: "seven", wantErr: true},
		{raw: true, wantErr: true},
		{raw: nil, wantErr: true},
	}
	for _, tt := range tc {
		got, err := ToInt64(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.raw)
			continue
		}
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestToBool(t *testing.T) {
	for _, raw := range []any{true, "yes", "1", "true", float64(1)} {
		b, err := ToBool(raw)
		require.NoError(t, err)
		assert.True(t, b, "%v", raw)
	}
	for _, raw := range []any{false, "no", "0", "false", float64(0)} {
		b, err := ToBool(raw)
		require.NoError(t, err)
		assert.False(t, b, "%v", raw)
	}
	_, err := ToBool("maybe")
	assert.Error(t, err)
	_, err = ToBool(float64(2))
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("-1")
	assert.Error(t, err)
	_, err = ParseID("abc")
	assert.Error(t, err)
}

func TestWriteRESTError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteRESTError(rec, http.StatusNotFound, "shipping_zone_invalid", "Invalid resource id.")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body RESTError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "shipping_zone_invalid", body.Code)
	assert.Equal(t, http.StatusNotFound, body.Data.Status)
}

func TestJWTRoundTrip(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT("u1", "a@b.c", "admin", time.Minute)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	claims, err := ExtractClaims(r)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	claims, err = ExtractClaims(r)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", claims.Email)

	_, err = ExtractClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoToken)

	expired, err := GenerateJWT("u1", "a@b.c", "admin", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateJWT(expired)
	assert.Error(t, err)

	SetSecret("other-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
