package scheduler

import (
	"context"

	"wholesale_portal_backend/platform/config"
	"wholesale_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Notifier delivers the emails behind each notification task.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, payload OrderPlacedPayload) error
	NotifyOrderStatus(ctx context.Context, payload OrderStatusPayload) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	notifier Notifier
	guard    *SendGuard
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notifier Notifier, guard *SendGuard, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := &Worker{
		server:   server,
		mux:      asynq.NewServeMux(),
		notifier: notifier,
		guard:    guard,
		log:      log,
	}
	w.mux.HandleFunc(TaskOrderPlacedNotify, w.handleOrderPlaced)
	w.mux.HandleFunc(TaskOrderStatusNotify, w.handleOrderStatus)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleOrderPlaced(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseOrderPlacedPayload(task)
	if err != nil {
		return err
	}

	key := sendMarkerKey(TaskOrderPlacedNotify, payload.OrderID, "placed")
	sent, err := w.guard.Once(ctx, key, func(ctx context.Context) error {
		return w.notifier.NotifyOrderPlaced(ctx, payload)
	})
	if err != nil {
		return err
	}
	if !sent {
		w.log.Info("order placed notification already sent", "order", payload.OrderNumber)
	}
	return nil
}

func (w *Worker) handleOrderStatus(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseOrderStatusPayload(task)
	if err != nil {
		return err
	}

	key := sendMarkerKey(TaskOrderStatusNotify, payload.OrderID, payload.NewStatus)
	sent, err := w.guard.Once(ctx, key, func(ctx context.Context) error {
		return w.notifier.NotifyOrderStatus(ctx, payload)
	})
	if err != nil {
		return err
	}
	if !sent {
		w.log.Info("order status notification already sent", "order", payload.OrderNumber, "status", payload.NewStatus)
	}
	return nil
}
