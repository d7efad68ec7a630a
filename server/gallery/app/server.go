package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cam_server/server/clipstore"
	commonauth "cam_server/server/common/auth"
	"cam_server/server/common/infra/object"
	galleryapi "cam_server/server/gallery/api"
	"cam_server/server/gallery/service"
)

type Config struct {
	Port      string
	JWTSecret string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ClipBucket     string
}

type Server struct {
	HTTPServer *http.Server
}

func NewServer(cfg Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	minioClient, err := object.NewClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		return nil, fmt.Errorf("initialize minio: %w", err)
	}
	if err := object.EnsureBucket(ctx, minioClient, cfg.ClipBucket); err != nil {
		return nil, fmt.Errorf("ensure clip bucket: %w", err)
	}

	store := clipstore.New(minioClient, cfg.ClipBucket)
	gallerySvc := service.NewGalleryService(store)
	authSvc := commonauth.NewService(cfg.JWTSecret)

	h := galleryapi.NewHandler(gallerySvc, authSvc)
	r := gin.Default()
	h.RegisterRoutes(r)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{HTTPServer: httpServer}, nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTPServer.Shutdown(ctx)
}
