package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	to   string
	code string
	err  error
}

func (s *captureSender) SendVerificationCode(to, code string) error {
	s.to = to
	s.code = code
	return s.err
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit %q", code, c)
	}
}

func TestLedgerRequestStoresAndSends(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	sender := &captureSender{}
	ledger := NewLedger(store, sender)

	require.NoError(t, ledger.Request(context.Background(), "a@example.com"))

	assert.Equal(t, "a@example.com", sender.to)
	require.Len(t, sender.code, 6)

	stored, ok, err := store.Get(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sender.code, stored)
}

func TestLedgerRequestSendFailureKeepsCode(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	sender := &captureSender{err: errors.New("smtp down")}
	ledger := NewLedger(store, sender)

	err := ledger.Request(context.Background(), "a@example.com")
	require.Error(t, err)

	// The code survives the send failure so a retry can overwrite it
	_, ok, err := store.Get(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyAndConsumeSingleUse(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ledger := NewLedger(store, &captureSender{})
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", "123456"))

	assert.True(t, ledger.VerifyAndConsume(ctx, "a@example.com", "123456"))
	assert.False(t, ledger.VerifyAndConsume(ctx, "a@example.com", "123456"),
		"a consumed code must not verify twice")
}

func TestVerifyAndConsumeWrongCode(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ledger := NewLedger(store, &captureSender{})
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", "123456"))

	assert.False(t, ledger.VerifyAndConsume(ctx, "a@example.com", "654321"))

	// A failed attempt does not consume the pending code
	assert.True(t, ledger.VerifyAndConsume(ctx, "a@example.com", "123456"))
}

func TestVerifyAndConsumeUnknownEmail(t *testing.T) {
	ledger := NewLedger(NewMemoryStore(time.Minute), &captureSender{})
	assert.False(t, ledger.VerifyAndConsume(context.Background(), "nobody@example.com", "123456"))
}

func TestLedgerRequestReplacesPendingCode(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	sender := &captureSender{}
	ledger := NewLedger(store, sender)
	ctx := context.Background()

	require.NoError(t, ledger.Request(ctx, "a@example.com"))
	first := sender.code
	require.NoError(t, ledger.Request(ctx, "a@example.com"))
	second := sender.code

	if first != second {
		assert.False(t, ledger.VerifyAndConsume(ctx, "a@example.com", first),
			"an overwritten code must not verify")
	}
	assert.True(t, ledger.VerifyAndConsume(ctx, "a@example.com", second))
}
