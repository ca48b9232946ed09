package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"

	// How long an in-flight reservation lives if the handler never finishes.
	provisionalLockTTL = 60 * time.Second
	maxIdempotencyKey  = 128
)

// ErrIdempotencyMiss is returned by an IdempotencyStore when the key is unknown.
var ErrIdempotencyMiss = errors.New("idempotency key not found")

// IdempotencyStore is the minimal key/value surface the middleware needs.
type IdempotencyStore interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisIdempotencyStore adapts a go-redis client.
type RedisIdempotencyStore struct {
	rdb *redis.Client
}

func NewRedisIdempotencyStore(rdb *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb}
}

func (s *RedisIdempotencyStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrIdempotencyMiss
	}
	return v, err
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *RedisIdempotencyStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

type idempotencyEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.buf.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a mutating request retried with the same
// Idempotency-Key. Requests without the header pass through untouched. The key is scoped
// to the caller, the method and the route, so it must run after AuthMiddleware.
func Idempotency(store IdempotencyStore, ttl time.Duration, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if idemKey == "" {
			c.Next()
			return
		}
		if len(idemKey) > maxIdempotencyKey {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key too long"})
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		userID, _ := GetUserIDFromContext(c)

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		bodyHash := hex.EncodeToString(sum[:])

		key := "idemp:" + strings.ToLower(c.Request.Method) + ":" + c.FullPath() + ":" + userID + ":" + idemKey
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		provisional, _ := json.Marshal(idempotencyEntry{InProgress: true, BodySHA256: bodyHash, CreatedAt: time.Now().UTC()})
		reserved, err := store.SetNX(ctx, key, provisional, provisionalLockTTL)
		if err != nil {
			logger.Error("Idempotency store unavailable", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "idempotency store unavailable"})
			return
		}

		if !reserved {
			var cur idempotencyEntry
			raw, err := store.Get(ctx, key)
			if err == nil {
				_ = json.Unmarshal(raw, &cur)
			} else if !errors.Is(err, ErrIdempotencyMiss) {
				logger.Warn("Failed to load idempotency entry", slog.String("error", err.Error()))
			}

			if cur.BodySHA256 != "" && cur.BodySHA256 != bodyHash {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Idempotency-Key reused with a different body"})
				return
			}
			if !cur.InProgress && cur.Code != 0 {
				if m != nil {
					m.IdempotentReplays.Inc()
				}
				c.Header("Idempotent-Replayed", "true")
				c.Data(cur.Code, "application/json; charset=utf-8", cur.Body)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "request is already in progress"})
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = rec
		c.Next()

		saveCtx, saveCancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
		defer saveCancel()

		// Server errors are not remembered so the client can retry.
		if c.Writer.Status() >= http.StatusInternalServerError {
			if err := store.Del(saveCtx, key); err != nil {
				logger.Warn("Failed to release idempotency key", slog.String("error", err.Error()))
			}
			return
		}

		final, _ := json.Marshal(idempotencyEntry{
			Code:       c.Writer.Status(),
			Body:       rec.buf.Bytes(),
			BodySHA256: bodyHash,
			CreatedAt:  time.Now().UTC(),
		})
		if err := store.Set(saveCtx, key, final, ttl); err != nil {
			logger.Warn("Failed to persist idempotent response", slog.String("error", err.Error()))
		}
	}
}
