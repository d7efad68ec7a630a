package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"cam_server/server/clipstore"
	commonlog "cam_server/server/common/log"
	"cam_server/server/notifier/domain"
)

// ClipStore is the slice of the storage layer the notifier needs.
type ClipStore interface {
	PresignGet(ctx context.Context, key string) (string, error)
	SetKeep(ctx context.Context, key string, kept bool) error
}

// Mailer delivers one plain-text alert.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// Deduper guards against redelivered events. FirstSeen reports whether this
// is the first sighting of key; implementations err on the side of true so a
// dedupe outage never silences alerts.
type Deduper interface {
	FirstSeen(ctx context.Context, key string) bool
}

type NotifyService struct {
	store  ClipStore
	mailer Mailer
	dedupe Deduper // nil disables deduplication
}

func NewNotifyService(store ClipStore, mailer Mailer, dedupe Deduper) *NotifyService {
	return &NotifyService{store: store, mailer: mailer, dedupe: dedupe}
}

// HandleEvent processes one queued notification payload. Every record is
// handled independently: a failure on one clip is logged and must not stop
// the rest of the batch.
func (s *NotifyService) HandleEvent(ctx context.Context, payload []byte) {
	var event domain.BucketEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		commonlog.Errorf("decode bucket event: %v", err)
		return
	}
	for _, record := range event.Records {
		if err := s.processRecord(ctx, record.S3.Object.Key); err != nil {
			commonlog.Errorf("process %s: %v", record.S3.Object.Key, err)
		}
	}
}

func (s *NotifyService) processRecord(ctx context.Context, rawKey string) error {
	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		return fmt.Errorf("unescape key: %w", err)
	}
	if !strings.HasSuffix(key, clipstore.ClipSuffix) {
		return nil
	}
	if s.dedupe != nil && !s.dedupe.FirstSeen(ctx, key) {
		commonlog.Infof("duplicate event for %s, skipping", key)
		return nil
	}

	clipName := key[strings.LastIndex(key, "/")+1:]
	deviceID := clipstore.DeviceID(clipName)

	viewURL, err := s.store.PresignGet(ctx, key)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Motion detected — %s", deviceID)
	body := fmt.Sprintf(
		"Motion detected on %s\n\nClip: %s\n\nDownload / play (link expires in 7 days):\n%s\n",
		deviceID, clipName, viewURL)

	if err := s.mailer.Send(ctx, subject, body); err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	commonlog.Infof("alert sent for %s", clipName)

	// Mark not-retained so the lifecycle rule may reap the clip. The
	// thumbnail may not have landed yet, so only the clip is tagged; the
	// gallery tags on explicit user action. The email is already out, so a
	// tagging failure is logged and left to the next human touch.
	if err := s.store.SetKeep(ctx, key, false); err != nil {
		commonlog.Warnf("could not tag %s: %v", key, err)
		return nil
	}
	commonlog.Infof("tagged keep=false: %s", key)
	return nil
}
