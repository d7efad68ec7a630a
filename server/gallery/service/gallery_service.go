package service

import (
	"context"
	"math"
	"sort"

	"cam_server/server/clipstore"
	commonlog "cam_server/server/common/log"
	"cam_server/server/gallery/domain"
)

const bytesPerMB = 1 << 20

// ClipStore is the slice of the storage layer the gallery needs.
type ClipStore interface {
	ListClips(ctx context.Context) ([]clipstore.ClipObject, error)
	PresignGet(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Kept(ctx context.Context, key string) (bool, error)
	SetKeep(ctx context.Context, key string, kept bool) error
	Delete(ctx context.Context, keys ...string) error
}

type GalleryService struct {
	store ClipStore
}

func NewGalleryService(store ClipStore) *GalleryService {
	return &GalleryService{store: store}
}

// ListClips assembles the full catalog, newest first. Missing thumbnails and
// unreadable tags degrade per clip; only the listing itself or a clip URL
// failure aborts the call.
func (s *GalleryService) ListClips(ctx context.Context) ([]domain.ClipEntry, error) {
	clips, err := s.store.ListClips(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ClipEntry, 0, len(clips))
	for _, clip := range clips {
		clipURL, err := s.store.PresignGet(ctx, clip.Key)
		if err != nil {
			return nil, err
		}

		basename := clipstore.Basename(clip.Key)
		timestamp := clipstore.FormatTimestamp(clip.LastModified)
		if ts, ok := clipstore.ParseTimestamp(basename); ok {
			timestamp = clipstore.FormatTimestamp(ts)
		}

		kept, err := s.store.Kept(ctx, clip.Key)
		if err != nil {
			// Untagged and unreadable look the same to the gallery.
			commonlog.Warnf("read keep tag for %s: %v", clip.Key, err)
			kept = false
		}

		entries = append(entries, domain.ClipEntry{
			ClipKey:   clip.Key,
			ClipURL:   clipURL,
			ThumbURL:  s.thumbURL(ctx, clip.Key),
			Timestamp: timestamp,
			SizeMB:    math.Round(float64(clip.Size)/bytesPerMB*100) / 100,
			Kept:      kept,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

// thumbURL presigns the paired thumbnail, or returns nil when it is absent.
// Probe failures count as absence; the clip row must still render.
func (s *GalleryService) thumbURL(ctx context.Context, clipKey string) *string {
	thumbKey := clipstore.ThumbKey(clipKey)
	exists, err := s.store.Exists(ctx, thumbKey)
	if err != nil {
		commonlog.Warnf("probe thumbnail %s: %v", thumbKey, err)
		return nil
	}
	if !exists {
		return nil
	}
	url, err := s.store.PresignGet(ctx, thumbKey)
	if err != nil {
		commonlog.Warnf("presign thumbnail %s: %v", thumbKey, err)
		return nil
	}
	return &url
}

func (s *GalleryService) Keep(ctx context.Context, clipKey string) error {
	if err := s.store.SetKeep(ctx, clipKey, true); err != nil {
		return err
	}
	commonlog.Infof("marked keep=true: %s", clipKey)
	return nil
}

func (s *GalleryService) Unkeep(ctx context.Context, clipKey string) error {
	if err := s.store.SetKeep(ctx, clipKey, false); err != nil {
		return err
	}
	commonlog.Infof("marked keep=false: %s", clipKey)
	return nil
}

// Delete removes the clip and, when it exists, its thumbnail in one batched
// request. A clip whose thumbnail never landed deletes cleanly.
func (s *GalleryService) Delete(ctx context.Context, clipKey string) error {
	keys := []string{clipKey}
	thumbKey := clipstore.ThumbKey(clipKey)
	exists, err := s.store.Exists(ctx, thumbKey)
	if err != nil {
		commonlog.Warnf("probe thumbnail %s before delete: %v", thumbKey, err)
	} else if exists {
		keys = append(keys, thumbKey)
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		return err
	}
	commonlog.Infof("deleted: %s", clipKey)
	return nil
}
