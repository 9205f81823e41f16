package pagination_test

import (
	"testing"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 15, 10, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but missing separator.
	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y")
	assert.Error(t, err)
}

func TestDateBasedToken_RoundTrip(t *testing.T) {
	date := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	token := pagination.EncodeDateBasedToken(date)
	got, err := pagination.DecodeDateBasedToken(token)

	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}
