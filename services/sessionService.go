package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	revokedSessionPrefix = "gh:session:revoked:"
	profileCutoffPrefix  = "gh:session:profile-cutoff:"
)

// SessionStore is the part of the redis client the session service needs.
type SessionStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionService keeps the ids of signed-out or used tokens until they would
// have expired anyway, and the per-profile cutoff set by a password reset.
type SessionService struct {
	store SessionStore
}

var sessionService *SessionService

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

// InitSessionService enables revocation when a redis client is available.
func InitSessionService(client *redis.Client) {
	if client == nil {
		sessionService = nil
		return
	}
	sessionService = NewSessionService(client)
}

func GetSessionService() *SessionService {
	return sessionService
}

// SetSessionService replaces the process-wide service; nil disables revocation.
func SetSessionService(s *SessionService) {
	sessionService = s
}

// Revoke marks the token id as signed out for ttl.
func (s *SessionService) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s == nil || tokenID == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return s.store.Set(ctx, revokedSessionPrefix+tokenID, 1, ttl).Err()
}

// Consume revokes a single-use token id and reports whether this call was the
// first to do so. Without redis every call is first.
func (s *SessionService) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if s == nil {
		return true, nil
	}
	if tokenID == "" || ttl <= 0 {
		return false, nil
	}
	return s.store.SetNX(ctx, revokedSessionPrefix+tokenID, 1, ttl).Result()
}

// IsRevoked reports whether the token id was signed out.
func (s *SessionService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s == nil || tokenID == "" {
		return false, nil
	}
	n, err := s.store.Exists(ctx, revokedSessionPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RevokeProfileSessions invalidates every session of the profile issued before at.
// ttl should cover the longest session lifetime.
func (s *SessionService) RevokeProfileSessions(ctx context.Context, profileID int, at time.Time, ttl time.Duration) error {
	if s == nil || ttl <= 0 {
		return nil
	}
	return s.store.Set(ctx, profileCutoffPrefix+strconv.Itoa(profileID), at.Unix(), ttl).Err()
}

// SessionsRevokedAt returns the profile's session cutoff, or the zero time.
func (s *SessionService) SessionsRevokedAt(ctx context.Context, profileID int) (time.Time, error) {
	if s == nil {
		return time.Time{}, nil
	}
	unix, err := s.store.Get(ctx, profileCutoffPrefix+strconv.Itoa(profileID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0).UTC(), nil
}
