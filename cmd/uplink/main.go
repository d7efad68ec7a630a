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
	uplinkapp "cam_server/server/uplink/app"
)

func main() {
	_ = godotenv.Load()

	port := cmnenv.String("UPLINK_PORT", "8081")
	server, err := uplinkapp.NewServer(uplinkapp.Config{
		Port:           port,
		DeviceAPIKey:   cmnenv.MustString("DEVICE_API_KEY"),
		MinioEndpoint:  cmnenv.String("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: cmnenv.String("MINIO_ACCESS_KEY", "minio"),
		MinioSecretKey: cmnenv.String("MINIO_SECRET_KEY", "minio123"),
		MinioUseSSL:    cmnenv.Bool("MINIO_USE_SSL", false),
		ClipBucket:     cmnenv.MustString("CLIP_BUCKET"),
	})
	if err != nil {
		log.Fatalf("initialize uplink server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		commonlog.Infof("start uplink http server on :%s", port)
		if err := server.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("run uplink http server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		commonlog.Errorf("shutdown uplink server gracefully: %v", err)
	}
}
