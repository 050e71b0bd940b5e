package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/vlatan/media-hub/internal/drivers/rdb"
)

// RedisStore keeps the session values in Redis.
// The cookie only carries the signed and encrypted session ID.
type RedisStore struct {
	rdb        *rdb.Service
	keyPrefix  string
	Options    *sessions.Options
	codecs     []securecookie.Codec
	serializer securecookie.GobEncoder
}

// NewRedisStore creates a new store.
// The key pairs are alternating authentication and encryption keys.
func NewRedisStore(
	rdb *rdb.Service,
	keyPrefix string,
	options *sessions.Options,
	keyPairs ...[]byte) *RedisStore {

	codecs := securecookie.CodecsFromPairs(keyPairs...)
	for _, codec := range codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(options.MaxAge)
		}
	}

	return &RedisStore{
		rdb:       rdb,
		keyPrefix: keyPrefix,
		Options:   options,
		codecs:    codecs,
	}
}

// Get returns the session cached in the request registry,
// or loads it on the first call.
func (rs *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(rs, name)
}

// New fetches the session from Redis or, if there's none, creates a new one
func (rs *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {

	session := sessions.NewSession(rs, name)
	options := *rs.Options
	session.Options = &options
	session.IsNew = true

	// Get the cookie
	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	// Tampered or expired cookies get a fresh session
	var id string
	if err = securecookie.DecodeMulti(name, cookie.Value, &id, rs.codecs...); err != nil {
		return session, nil
	}

	// Get from Redis
	data, err := rs.rdb.Client.Get(r.Context(), rs.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session, nil
	}

	if err != nil {
		return session, fmt.Errorf("failed to load session from Redis; %w", err)
	}

	if err = rs.serializer.Deserialize(data, &session.Values); err != nil {
		return session, nil
	}

	session.ID = id
	session.IsNew = false
	return session, nil
}

// Save writes the session values to Redis and the ID to the cookie.
// A negative MaxAge deletes the session.
func (rs *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := rs.rdb.Delete(r.Context(), rs.key(session.ID)); err != nil {
				return fmt.Errorf("failed to delete session from Redis; %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = generateSessionID()
	}

	data, err := rs.serializer.Serialize(session.Values)
	if err != nil {
		return fmt.Errorf("failed to serialize the session; %w", err)
	}

	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err = rs.rdb.Client.Set(r.Context(), rs.key(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis; %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, rs.codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode the session cookie; %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (rs *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", rs.keyPrefix, id)
}

func generateSessionID() string {
	bytes := make([]byte, 32)
	rand.Read(bytes) // #nosec G104
	return hex.EncodeToString(bytes)
}
