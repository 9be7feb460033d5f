package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/parkmoor/clubhouse/internal/portal/blob"
	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

// BucketSink writes one JSON object per login event to object storage
// under audit/. Event ids are ULIDs, so keys list in time order.
type BucketSink struct {
	Storage blob.Storage
}

type bucketEvent struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Username  string    `json:"username"`
	IP        string    `json:"ip"`
	Status    string    `json:"status"`
	LatencyMS int64     `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *BucketSink) Record(ctx context.Context, ev domain.LoginEvent) error {
	created := ev.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	payload, err := json.Marshal(bucketEvent{
		ID:        ev.ID,
		UserID:    ev.UserID,
		Username:  ev.Username,
		IP:        ev.IP,
		Status:    ev.Status,
		LatencyMS: ev.LatencyMS,
		CreatedAt: created,
	})
	if err != nil {
		return err
	}

	key := "audit/" + ev.ID + ".json"
	return s.Storage.Put(ctx, key, bytes.NewReader(payload), int64(len(payload)), "application/json")
}
