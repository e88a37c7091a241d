package relay

import (
	"context"
	"crypto/tls"
	"fmt"

	"lead_gateway_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// QueuePublisher enqueues messages onto the Redis-backed relay queue for
// the relay worker to deliver out of band.
type QueuePublisher struct {
	client *asynq.Client
	queue  string
}

// NewQueuePublisher creates a queue-backed publisher from the relay config.
func NewQueuePublisher(cfg config.RelayConfig) (*QueuePublisher, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &QueuePublisher{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

// Close releases the underlying asynq client.
func (p *QueuePublisher) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Publish enqueues the message. Enqueue failure is the caller's to log.
func (p *QueuePublisher) Publish(ctx context.Context, msg Message) error {
	task, err := NewWorkflowRelayTask(msg)
	if err != nil {
		return err
	}

	_, err = p.client.EnqueueContext(ctx, task, asynq.Queue(p.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
