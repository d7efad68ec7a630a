package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	cmnenv "cam_server/server/common/env"
	commonlog "cam_server/server/common/log"
	galleryapp "cam_server/server/gallery/app"
)

func main() {
	_ = godotenv.Load()

	port := cmnenv.String("GALLERY_PORT", "8080")
	server, err := galleryapp.NewServer(galleryapp.Config{
		Port:           port,
		JWTSecret:      cmnenv.String("JWT_SECRET", "change-me-in-production"),
		MinioEndpoint:  cmnenv.String("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: cmnenv.String("MINIO_ACCESS_KEY", "minio"),
		MinioSecretKey: cmnenv.String("MINIO_SECRET_KEY", "minio123"),
		MinioUseSSL:    cmnenv.Bool("MINIO_USE_SSL", false),
		ClipBucket:     cmnenv.MustString("CLIP_BUCKET"),
	})
	if err != nil {
		log.Fatalf("initialize gallery server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		commonlog.Infof("start gallery http server on :%s", port)
		if err := server.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("run gallery http server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		commonlog.Errorf("shutdown gallery server gracefully: %v", err)
	}
}
