package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybooks/tally_books_app/internal/utils/pagination"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	txnDate := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, time.May, 2, 10, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeToken(txnDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, txnDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := "MjAyNC0wNS0wMlQwMDowMDowMFo=" // single field, no separator
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}
