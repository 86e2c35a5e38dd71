package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/fintrack/fintrack_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	operationDate := time.Date(2024, time.June, 5, 10, 30, 0, 123456789, time.UTC)
	createdAt := time.Date(2024, time.June, 5, 10, 30, 1, 0, time.UTC)

	token := pagination.EncodeToken(operationDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(operationDate))
	assert.True(t, gotCreated.Equal(createdAt))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-valid-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2024-06-05T10:30:00Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_UnparseableTimes(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("garbage|2024-06-05T10:30:00Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)

	token = base64.StdEncoding.EncodeToString([]byte("2024-06-05T10:30:00Z|garbage"))
	_, _, err = pagination.DecodeToken(token)
	assert.Error(t, err)
}
