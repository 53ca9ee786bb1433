package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"covid-dashboard/db"
	"covid-dashboard/models"
)

// PAGE_STATE_KEY_FORMAT_V1 keys a page snapshot by session id and page.
const PAGE_STATE_KEY_FORMAT_V1 = "page_state_v1:%s:%s"

// ErrSnapshotNotFound is returned when a session has no stored snapshot for a page.
var ErrSnapshotNotFound = errors.New("page snapshot not found")

// RedisPageStateDAO stores mounted page snapshots in Redis.
type RedisPageStateDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisPageStateDAO initializes a RedisPageStateDAO. Snapshots expire
// after ttl unless saved again.
func NewRedisPageStateDAO(client db.RedisClient, ttl time.Duration) *RedisPageStateDAO {
	return &RedisPageStateDAO{client: client, ttl: ttl}
}

func pageStateKey(sessionID string, page models.PageName) string {
	return fmt.Sprintf(PAGE_STATE_KEY_FORMAT_V1, sessionID, page)
}

// SaveSnapshot stores the snapshot of a session's mounted page.
func (dao *RedisPageStateDAO) SaveSnapshot(ctx context.Context, sessionID string, snap models.PageSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot of %s: %w", snap.Page, err)
	}
	if err := dao.client.Set(ctx, pageStateKey(sessionID, snap.Page), string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set page snapshot in redis: %w", err)
	}
	return nil
}

// GetSnapshot loads the snapshot of a page, ErrSnapshotNotFound when absent.
func (dao *RedisPageStateDAO) GetSnapshot(ctx context.Context, sessionID string, page models.PageName) (*models.PageSnapshot, error) {
	str, err := dao.client.Get(ctx, pageStateKey(sessionID, page))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page snapshot from redis: %w", err)
	}
	var snap models.PageSnapshot
	if err := json.Unmarshal([]byte(str), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page snapshot JSON: %w", err)
	}
	return &snap, nil
}

// DeleteSnapshot discards the snapshot of one page.
func (dao *RedisPageStateDAO) DeleteSnapshot(ctx context.Context, sessionID string, page models.PageName) error {
	if err := dao.client.Del(ctx, pageStateKey(sessionID, page)); err != nil {
		return fmt.Errorf("failed to delete page snapshot: %w", err)
	}
	return nil
}

// DeleteOtherSnapshots discards every snapshot of the session except keep's.
func (dao *RedisPageStateDAO) DeleteOtherSnapshots(ctx context.Context, sessionID string, keep models.PageName) error {
	stale := make([]string, 0, len(models.Pages))
	for _, page := range models.Pages {
		if page != keep {
			stale = append(stale, pageStateKey(sessionID, page))
		}
	}
	log.Printf("[RedisPageStateDAO] Discarding snapshots of session %s except %s", sessionID, keep)
	if err := dao.client.Del(ctx, stale...); err != nil {
		return fmt.Errorf("failed to delete stale page snapshots: %w", err)
	}
	return nil
}
