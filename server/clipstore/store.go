package clipstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/tags"
)

const (
	keepTagKey  = "keep"
	keepTagTrue = "true"

	// GetExpiry covers the email link and the gallery; PutExpiry only needs
	// to outlast a single device upload.
	GetExpiry = 7 * 24 * time.Hour
	PutExpiry = 5 * time.Minute
)

// ClipObject is one stored clip as reported by a listing.
type ClipObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store wraps the bucket with the operations the handlers share: listing,
// presigning, tag reads and writes, existence probes and batched deletes.
type Store struct {
	client *minio.Client
	bucket string
}

func New(client *minio.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// ListClips walks every object under clips/ (the client pages internally, so
// large buckets are never truncated) and returns the .avi entries.
func (s *Store) ListClips(ctx context.Context) ([]ClipObject, error) {
	var clips []ClipObject
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    ClipPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", ClipPrefix, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ClipSuffix) {
			continue
		}
		clips = append(clips, ClipObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return clips, nil
}

// PresignGet issues a read URL valid for GetExpiry.
func (s *Store) PresignGet(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, GetExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return u.String(), nil
}

// PresignPut issues a write URL valid for PutExpiry.
func (s *Store) PresignPut(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, PutExpiry)
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return u.String(), nil
}

// Exists probes key with a stat call. A missing object is (false, nil); any
// other failure is returned for the caller to decide on.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", key, err)
	}
	return true, nil
}

// Kept reads the retention tag set and decodes it through IsKept.
func (s *Store) Kept(ctx context.Context, key string) (bool, error) {
	t, err := s.client.GetObjectTagging(ctx, s.bucket, key, minio.GetObjectTaggingOptions{})
	if err != nil {
		return false, fmt.Errorf("read tags %s: %w", key, err)
	}
	return IsKept(t.ToMap()), nil
}

// SetKeep replaces the object's tag set with keep=true or keep=false. Tag
// writes are atomic per object; concurrent writers are last-write-wins.
func (s *Store) SetKeep(ctx context.Context, key string, kept bool) error {
	value := "false"
	if kept {
		value = keepTagTrue
	}
	t, err := tags.NewTags(map[string]string{keepTagKey: value}, true)
	if err != nil {
		return fmt.Errorf("build tag set: %w", err)
	}
	if err := s.client.PutObjectTagging(ctx, s.bucket, key, t, minio.PutObjectTaggingOptions{}); err != nil {
		return fmt.Errorf("tag %s keep=%s: %w", key, value, err)
	}
	return nil
}

// Delete removes the given keys in one batched request.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	objects := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objects <- minio.ObjectInfo{Key: key}
	}
	close(objects)

	for result := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		if result.Err != nil {
			return fmt.Errorf("delete %s: %w", result.ObjectName, result.Err)
		}
	}
	return nil
}
