package reports

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/pkg/redis"
)

// PreviewCache holds rendered previews keyed per inspection. An entry is
// only served when its record revision and template version still match.
type PreviewCache interface {
	Get(ctx context.Context, inspectionID uuid.UUID, updatedAt time.Time, templateVersion string) ([]byte, bool, error)
	Put(ctx context.Context, inspectionID uuid.UUID, updatedAt time.Time, templateVersion string, pdf []byte) error
	Invalidate(ctx context.Context, inspectionID uuid.UUID) error
}

type previewEntry struct {
	UpdatedAtUnixNano int64  `json:"updatedAt"`
	TemplateVersion   string `json:"templateVersion"`
	PDF               string `json:"pdf"`
}

// RedisPreviewCache stores one preview per inspection with a bounded TTL;
// a replacement overwrites the previous entry.
type RedisPreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPreviewCache wires the cache onto the shared Redis client.
func NewRedisPreviewCache(client *redis.Client, ttl time.Duration) (*RedisPreviewCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("preview ttl must be positive")
	}
	return &RedisPreviewCache{client: client, ttl: ttl}, nil
}

func (c *RedisPreviewCache) Get(ctx context.Context, inspectionID uuid.UUID, updatedAt time.Time, templateVersion string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, c.client.PreviewKey(inspectionID.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entry previewEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, false, fmt.Errorf("decode preview entry: %w", err)
	}
	if entry.UpdatedAtUnixNano != updatedAt.UnixNano() || entry.TemplateVersion != templateVersion {
		return nil, false, nil
	}
	pdf, err := base64.StdEncoding.DecodeString(entry.PDF)
	if err != nil {
		return nil, false, fmt.Errorf("decode preview payload: %w", err)
	}
	return pdf, true, nil
}

func (c *RedisPreviewCache) Put(ctx context.Context, inspectionID uuid.UUID, updatedAt time.Time, templateVersion string, pdf []byte) error {
	entry := previewEntry{
		UpdatedAtUnixNano: updatedAt.UnixNano(),
		TemplateVersion:   templateVersion,
		PDF:               base64.StdEncoding.EncodeToString(pdf),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode preview entry: %w", err)
	}
	return c.client.Set(ctx, c.client.PreviewKey(inspectionID.String()), payload, c.ttl)
}

func (c *RedisPreviewCache) Invalidate(ctx context.Context, inspectionID uuid.UUID) error {
	return c.client.Del(ctx, c.client.PreviewKey(inspectionID.String()))
}
