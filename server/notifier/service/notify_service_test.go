package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	presignErr error
	setKeepErr error
	keepWrites map[string]bool
}

func (f *fakeStore) PresignGet(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://signed.example/" + key, nil
}

func (f *fakeStore) SetKeep(ctx context.Context, key string, kept bool) error {
	if f.setKeepErr != nil {
		return f.setKeepErr
	}
	if f.keepWrites == nil {
		f.keepWrites = map[string]bool{}
	}
	f.keepWrites[key] = kept
	return nil
}

type fakeMailer struct {
	sendErr  error
	subjects []string
	bodies   []string
}

func (f *fakeMailer) Send(ctx context.Context, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

type fakeDeduper struct {
	seen map[string]bool
}

func (f *fakeDeduper) FirstSeen(ctx context.Context, key string) bool {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	return true
}

func eventPayload(keys ...string) []byte {
	records := ""
	for i, key := range keys {
		if i > 0 {
			records += ","
		}
		records += fmt.Sprintf(`{"eventName":"s3:ObjectCreated:Put","s3":{"bucket":{"name":"cam-clips"},"object":{"key":"%s","size":1048576}}}`, key)
	}
	return []byte(`{"EventName":"s3:ObjectCreated:Put","Records":[` + records + `]}`)
}

func TestHandleEventAlertsAndTagsOnlyClips(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	svc := NewNotifyService(store, mailer, nil)

	svc.HandleEvent(context.Background(), eventPayload(
		"clips%2Fesp32-eye-01_20260221_120000.avi",
		"clips%2Fmetadata.json",
	))

	require.Len(t, mailer.subjects, 1)
	assert.Equal(t, "Motion detected — esp32-eye-01", mailer.subjects[0])
	assert.Contains(t, mailer.bodies[0], "Motion detected on esp32-eye-01")
	assert.Contains(t, mailer.bodies[0], "Clip: esp32-eye-01_20260221_120000.avi")
	assert.Contains(t, mailer.bodies[0], "https://signed.example/clips/esp32-eye-01_20260221_120000.avi")

	require.Len(t, store.keepWrites, 1)
	kept, ok := store.keepWrites["clips/esp32-eye-01_20260221_120000.avi"]
	require.True(t, ok)
	assert.False(t, kept)
}

func TestHandleEventContinuesPastFailingRecord(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	svc := NewNotifyService(store, mailer, nil)

	svc.HandleEvent(context.Background(), eventPayload(
		"%zz-not-unescapable",
		"clips%2Fcam1_20260221_120000.avi",
	))

	require.Len(t, mailer.subjects, 1)
	assert.Equal(t, "Motion detected — cam1", mailer.subjects[0])
}

func TestHandleEventMailFailureSkipsTagging(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}
	svc := NewNotifyService(store, mailer, nil)

	svc.HandleEvent(context.Background(), eventPayload("clips%2Fcam1_20260221_120000.avi"))

	assert.Empty(t, store.keepWrites)
}

func TestHandleEventTagFailureAfterMailIsSwallowed(t *testing.T) {
	store := &fakeStore{setKeepErr: errors.New("tagging unavailable")}
	mailer := &fakeMailer{}
	svc := NewNotifyService(store, mailer, nil)

	svc.HandleEvent(context.Background(), eventPayload(
		"clips%2Fcam1_20260221_120000.avi",
		"clips%2Fcam2_20260221_130000.avi",
	))

	// The email is already out; the tag write failing must not stop the batch.
	assert.Len(t, mailer.subjects, 2)
}

func TestHandleEventDeduplicatesRedeliveries(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	svc := NewNotifyService(store, mailer, &fakeDeduper{})

	payload := eventPayload("clips%2Fcam1_20260221_120000.avi")
	svc.HandleEvent(context.Background(), payload)
	svc.HandleEvent(context.Background(), payload)

	assert.Len(t, mailer.subjects, 1)
}

func TestHandleEventIgnoresMalformedPayload(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	svc := NewNotifyService(store, mailer, nil)

	svc.HandleEvent(context.Background(), []byte("not json"))

	assert.Empty(t, mailer.subjects)
	assert.Empty(t, store.keepWrites)
}
