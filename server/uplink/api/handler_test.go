package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cam_server/server/uplink/api"
	"cam_server/server/uplink/service"
)

const testAPIKey = "device-secret"

type recordingStore struct {
	putKeys []string
}

func (r *recordingStore) PresignPut(ctx context.Context, key string) (string, error) {
	r.putKeys = append(r.putKeys, key)
	return "https://signed.example/" + key, nil
}

func newUplinkRouter(t *testing.T, store *recordingStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := api.NewHandler(service.NewUplinkService(store), testAPIKey)
	h.RegisterRoutes(r)
	return r
}

func TestPresignRejectsBadSecret(t *testing.T) {
	store := &recordingStore{}
	r := newUplinkRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/presign?clip=a.avi&thumb=a_thumb.jpg", nil)
	req.Header.Set("x-api-key", "wrong")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, store.putKeys)
}

func TestPresignRejectsMissingSecret(t *testing.T) {
	store := &recordingStore{}
	r := newUplinkRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/presign?clip=a.avi&thumb=a_thumb.jpg", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, store.putKeys)
}

func TestPresignRejectsMissingParameters(t *testing.T) {
	store := &recordingStore{}
	r := newUplinkRouter(t, store)

	for _, query := range []string{"", "?clip=a.avi", "?thumb=a_thumb.jpg"} {
		req := httptest.NewRequest(http.MethodGet, "/presign"+query, nil)
		req.Header.Set("x-api-key", testAPIKey)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, query)
	}
	assert.Empty(t, store.putKeys)
}

func TestPresignIssuesUploadURLPair(t *testing.T) {
	store := &recordingStore{}
	r := newUplinkRouter(t, store)

	req := httptest.NewRequest(http.MethodGet,
		"/presign?clip=cam1_20260221_120000.avi&thumb=cam1_20260221_120000_thumb.jpg", nil)
	req.Header.Set("x-api-key", testAPIKey)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		ClipURL  string `json:"clip_url"`
		ThumbURL string `json:"thumb_url"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "https://signed.example/clips/cam1_20260221_120000.avi", resp.ClipURL)
	assert.Equal(t, "https://signed.example/thumbs/cam1_20260221_120000_thumb.jpg", resp.ThumbURL)
	assert.Equal(t, []string{
		"clips/cam1_20260221_120000.avi",
		"thumbs/cam1_20260221_120000_thumb.jpg",
	}, store.putKeys)
}
