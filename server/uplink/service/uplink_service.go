package service

import (
	"context"

	"cam_server/server/clipstore"
	commonlog "cam_server/server/common/log"
)

// ClipStore is the write-URL slice of the storage layer.
type ClipStore interface {
	PresignPut(ctx context.Context, key string) (string, error)
}

// UplinkService issues the short-lived upload URL pair the device PUTs
// through. The device names both objects itself; no existence or format
// checks happen here — the naming convention is its contract with the
// downstream handlers.
type UplinkService struct {
	store ClipStore
}

func NewUplinkService(store ClipStore) *UplinkService {
	return &UplinkService{store: store}
}

func (s *UplinkService) PresignUpload(ctx context.Context, clipName, thumbName string) (clipURL, thumbURL string, err error) {
	clipURL, err = s.store.PresignPut(ctx, clipstore.ClipPrefix+clipName)
	if err != nil {
		return "", "", err
	}
	thumbURL, err = s.store.PresignPut(ctx, clipstore.ThumbPrefix+thumbName)
	if err != nil {
		return "", "", err
	}
	commonlog.Infof("presigned upload URLs for clip=%s thumb=%s", clipName, thumbName)
	return clipURL, thumbURL, nil
}
