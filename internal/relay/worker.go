package relay

import (
	"context"
	"fmt"

	"lead_gateway_backend/platform/config"
	"lead_gateway_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes the relay queue and performs the actual HTTP delivery
// to the workflow webhook. One attempt per message; a failed delivery is
// logged and the task is dropped (MaxRetry 0 on enqueue).
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	publisher *HTTPPublisher
	log       *logger.Logger
}

// NewWorker creates the relay worker from the relay config.
func NewWorker(cfg config.RelayConfig, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		publisher: NewHTTPPublisher(cfg),
		log:       log,
	}

	mux.HandleFunc(TaskWorkflowRelayDeliver, w.handleDeliver)

	return w, nil
}

func (w *Worker) handleDeliver(ctx context.Context, task *asynq.Task) error {
	msg, err := ParseWorkflowRelayPayload(task)
	if err != nil {
		w.log.Error("relay task payload unreadable", "error", err.Error())
		return nil
	}

	if err := w.publisher.Publish(ctx, msg); err != nil {
		w.log.Warn("relay delivery failed",
			"event_id", msg.EventID,
			"event_type", msg.EventType,
			"error", err.Error(),
		)
	}
	return nil
}

// Run blocks serving the queue until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("relay worker stopped", "error", err)
	}
}
