package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vocabquiz/internal/quiz"
	"vocabquiz/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "quiz:session:"

// SessionStore keeps quiz sessions in Redis as JSON with a TTL
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewSessionStore creates a Redis-backed session store
func NewSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// SaveSession stores session and refreshes its expiry
func (s *SessionStore) SaveSession(ctx context.Context, session *quiz.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store quiz session: %w", err)
	}
	return nil
}

// GetSession loads a session
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*quiz.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz session: %w", err)
	}

	var session quiz.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
