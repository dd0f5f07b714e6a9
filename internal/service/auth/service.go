package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/repository/store"
)

var (
	// ErrInvalidCode is returned when the submitted access code does not match.
	ErrInvalidCode = errors.New("invalid access code")
	// ErrInvalidSession is returned for unknown or expired session tokens.
	ErrInvalidSession = errors.New("invalid session")
)

// Service issues and validates session tokens for the shared access code.
type Service struct {
	code   string
	ttl    time.Duration
	kv     store.KeyValue
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an auth service. A zero ttl keeps sessions until logout.
func NewService(code string, ttl time.Duration, kv store.KeyValue, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{code: code, ttl: ttl, kv: kv, logger: logger, now: time.Now}
}

// Login exchanges the access code for a new session token.
func (s *Service) Login(ctx context.Context, code string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(code), []byte(s.code)) != 1 {
		s.logger.Warn("login rejected")
		return "", ErrInvalidCode
	}

	token := uuid.NewString()
	issued := s.now().UTC().Format(time.RFC3339)
	if err := s.kv.Set(ctx, store.SessionPrefix+token, issued); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	s.logger.Info("session opened")
	return token, nil
}

// Validate checks that token belongs to a live session.
func (s *Service) Validate(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return ErrInvalidSession
	}
	issued, err := s.kv.Get(ctx, store.SessionPrefix+token)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidSession
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.ttl <= 0 {
		return nil
	}
	at, err := time.Parse(time.RFC3339, issued)
	if err != nil || s.now().Sub(at) > s.ttl {
		if derr := s.kv.Delete(ctx, store.SessionPrefix+token); derr != nil {
			s.logger.Warn("expired session not evicted", zap.Error(derr))
		}
		return ErrInvalidSession
	}
	return nil
}

// Logout ends the session identified by token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.kv.Delete(ctx, store.SessionPrefix+token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("session closed")
	return nil
}
