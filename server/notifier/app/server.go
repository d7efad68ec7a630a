package app

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"cam_server/server/clipstore"
	"cam_server/server/common/infra/cache"
	"cam_server/server/common/infra/mq"
	"cam_server/server/common/infra/object"
	commonlog "cam_server/server/common/log"
	"cam_server/server/notifier/service"
)

type Config struct {
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ClipBucket     string

	AMQPURL    string
	EventQueue string

	RedisAddr string // empty disables alert deduplication

	Mail service.MailConfig
}

// Server consumes bucket ObjectCreated events and runs the notifier over
// them. Messages are acked after processing; per-clip failures are logged
// inside the service, so redelivery only happens when the process dies
// mid-message.
type Server struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	deliveries <-chan amqp.Delivery
	notify     *service.NotifyService
}

func NewServer(cfg Config) (*Server, error) {
	minioClient, err := object.NewClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		return nil, fmt.Errorf("initialize minio: %w", err)
	}
	store := clipstore.New(minioClient, cfg.ClipBucket)

	mailer, err := service.NewSMTPMailer(cfg.Mail)
	if err != nil {
		return nil, err
	}

	var dedupe service.Deduper
	if cfg.RedisAddr != "" {
		dedupe = service.NewRedisDeduper(cache.NewClient(cfg.RedisAddr))
	}

	conn, err := mq.NewConnection(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}
	channel, deliveries, err := mq.ConsumeQueue(conn, cfg.EventQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("consume %s: %w", cfg.EventQueue, err)
	}

	return &Server{
		conn:       conn,
		channel:    channel,
		deliveries: deliveries,
		notify:     service.NewNotifyService(store, mailer, dedupe),
	}, nil
}

// Run blocks until the context is cancelled or the broker closes the stream.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-s.deliveries:
			if !ok {
				return fmt.Errorf("event stream closed")
			}
			s.notify.HandleEvent(ctx, delivery.Body)
			if err := delivery.Ack(false); err != nil {
				commonlog.Errorf("ack event: %v", err)
			}
		}
	}
}

func (s *Server) Close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}
