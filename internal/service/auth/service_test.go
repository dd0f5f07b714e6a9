package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/eggmonitor/internal/repository/store"
)

func TestLoginValidateLogout(t *testing.T) {
	ctx := context.Background()
	svc := NewService("granja2024", 0, store.NewMemoryStore(), nil)

	_, err := svc.Login(ctx, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCode)

	token, err := svc.Login(ctx, "granja2024")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NoError(t, svc.Validate(ctx, token))

	require.NoError(t, svc.Logout(ctx, token))
	assert.ErrorIs(t, svc.Validate(ctx, token), ErrInvalidSession)
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := NewService("code", 0, store.NewMemoryStore(), nil)
	assert.ErrorIs(t, svc.Validate(context.Background(), "not-a-token"), ErrInvalidSession)
	assert.ErrorIs(t, svc.Validate(context.Background(), "6f1c2b54-1f1e-4b1d-9f55-0d7d2a5a1e11"), ErrInvalidSession)
}

func TestValidate_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := NewService("code", time.Hour, store.NewMemoryStore(), nil)
	svc.now = func() time.Time { return now }

	token, err := svc.Login(ctx, "code")
	require.NoError(t, err)
	require.NoError(t, svc.Validate(ctx, token))

	now = now.Add(2 * time.Hour)
	assert.ErrorIs(t, svc.Validate(ctx, token), ErrInvalidSession)
}

type failingDeleteStore struct {
	*store.MemoryStore
}

func (failingDeleteStore) Delete(context.Context, string) error {
	return errors.New("mongo unavailable")
}

func TestValidate_ExpiredEvictionFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := NewService("code", time.Hour, failingDeleteStore{store.NewMemoryStore()}, zap.New(core))
	svc.now = func() time.Time { return now }

	token, err := svc.Login(ctx, "code")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	assert.ErrorIs(t, svc.Validate(ctx, token), ErrInvalidSession)
	require.Equal(t, 1, logs.FilterMessage("expired session not evicted").Len())
}
