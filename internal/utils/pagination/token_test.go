package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 14, 10, 30, 45, 123456789, time.UTC)
	leadID := "4f9d4e9e-0d6a-4f05-9c5e-0f9a1b2c3d4e"

	token := pagination.EncodeToken(createdAt, leadID)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, leadID, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	t.Run("not base64", func(t *testing.T) {
		_, _, err := pagination.DecodeToken("not-a-token!!!")
		assert.Error(t, err)
	})

	t.Run("missing separator", func(t *testing.T) {
		raw := base64.StdEncoding.EncodeToString([]byte("justonefield"))
		_, _, err := pagination.DecodeToken(raw)
		assert.Error(t, err)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		raw := base64.StdEncoding.EncodeToString([]byte("yesterday|some-id"))
		_, _, err := pagination.DecodeToken(raw)
		assert.Error(t, err)
	})

	t.Run("empty id", func(t *testing.T) {
		raw := base64.StdEncoding.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano) + "|"))
		_, _, err := pagination.DecodeToken(raw)
		assert.Error(t, err)
	})
}
