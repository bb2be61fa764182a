package forms

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/redis"
)

// submitLockTTL caps how long a stuck submission can hold the lock. It
// outlasts the catalog request timeout so a slow upstream cannot race a
// second attempt.
const submitLockTTL = 5 * time.Minute

// SessionStore persists sessions, their pending uploads and the per-session
// submit guard.
type SessionStore interface {
	SaveSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error

	SaveAttachment(ctx context.Context, sessionID uuid.UUID, attachment *Attachment) error
	GetAttachment(ctx context.Context, sessionID, attachmentID uuid.UUID) (*Attachment, error)
	DeleteAttachment(ctx context.Context, sessionID, attachmentID uuid.UUID) error

	AcquireSubmitLock(ctx context.Context, sessionID uuid.UUID) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID uuid.UUID) error
}

// KV is the slice of the redis client the store uses.
type KV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	FormSessionKey(sessionID string) string
	AttachmentKey(sessionID, attachmentID string) string
	SubmitLockKey(sessionID string) string
}

// RedisStore keeps sessions and attachments under namespaced keys with a
// shared TTL. Attachments ride the session's lifetime.
type RedisStore struct {
	kv  KV
	ttl time.Duration
}

// NewRedisStore builds a store over the shared redis client.
func NewRedisStore(kv KV, sessionTTL time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: sessionTTL}
}

func (s *RedisStore) SaveSession(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding form session")
	}
	if err := s.kv.Set(ctx, s.kv.FormSessionKey(session.ID.String()), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing form session")
	}
	return nil
}

func (s *RedisStore) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	raw, err := s.kv.GetBytes(ctx, s.kv.FormSessionKey(sessionID.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "form session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading form session")
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding form session")
	}
	return &session, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.kv.Del(ctx, s.kv.FormSessionKey(sessionID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting form session")
	}
	return nil
}

func (s *RedisStore) SaveAttachment(ctx context.Context, sessionID uuid.UUID, attachment *Attachment) error {
	payload, err := json.Marshal(attachment)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding attachment")
	}
	key := s.kv.AttachmentKey(sessionID.String(), attachment.ID.String())
	if err := s.kv.Set(ctx, key, payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing attachment")
	}
	return nil
}

func (s *RedisStore) GetAttachment(ctx context.Context, sessionID, attachmentID uuid.UUID) (*Attachment, error) {
	key := s.kv.AttachmentKey(sessionID.String(), attachmentID.String())
	raw, err := s.kv.GetBytes(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attachment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading attachment")
	}
	var attachment Attachment
	if err := json.Unmarshal(raw, &attachment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding attachment")
	}
	return &attachment, nil
}

func (s *RedisStore) DeleteAttachment(ctx context.Context, sessionID, attachmentID uuid.UUID) error {
	key := s.kv.AttachmentKey(sessionID.String(), attachmentID.String())
	if err := s.kv.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting attachment")
	}
	return nil
}

func (s *RedisStore) AcquireSubmitLock(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	acquired, err := s.kv.SetNX(ctx, s.kv.SubmitLockKey(sessionID.String()), "1", submitLockTTL)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquiring submit lock")
	}
	return acquired, nil
}

func (s *RedisStore) ReleaseSubmitLock(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.kv.Del(ctx, s.kv.SubmitLockKey(sessionID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "releasing submit lock")
	}
	return nil
}
