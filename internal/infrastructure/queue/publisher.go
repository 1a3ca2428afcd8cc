package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
	domain "augeo-server/services/admin-api/internal/domain/media"
)

// Publisher pushes scan and thumbnail jobs onto RabbitMQ. When AMQP_URL is
// unset it runs disabled: publishes are logged and dropped so the upload
// workflow keeps working in environments without a broker.
type Publisher struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	scanQueue  string
	thumbnailQ string
	log        zerolog.Logger
	disabled   bool
}

func NewPublisher(cfg *config.Config, log zerolog.Logger) (*Publisher, error) {
	logger := log.With().Str("component", "job-queue").Logger()
	p := &Publisher{
		scanQueue:  cfg.ScanQueueName,
		thumbnailQ: cfg.ThumbnailQueueName,
		log:        logger,
	}

	if cfg.AMQPURL == "" {
		logger.Warn().Msg("AMQP_URL is not set; scan and thumbnail jobs will be dropped until configured")
		p.disabled = true
		return p, nil
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	for _, name := range []string{p.scanQueue, p.thumbnailQ} {
		if _, err := channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", name, err)
		}
	}

	p.conn = conn
	p.channel = channel
	return p, nil
}

// PublishScan enqueues a content scan job for a confirmed upload.
func (p *Publisher) PublishScan(ctx context.Context, job domain.ScanJob) error {
	return p.publish(ctx, p.scanQueue, job)
}

// PublishThumbnail enqueues an image post-processing job.
func (p *Publisher) PublishThumbnail(ctx context.Context, job domain.ThumbnailJob) error {
	return p.publish(ctx, p.thumbnailQ, job)
}

func (p *Publisher) publish(ctx context.Context, queueName string, payload interface{}) error {
	if p.disabled {
		p.log.Debug().Str("queue", queueName).Msg("queue disabled, dropping job")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", queueName, err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.disabled {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
