package app

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"foodmarket-delivery/internal/config"
	"foodmarket-delivery/internal/logx"
	"foodmarket-delivery/internal/service/delivery"
	"foodmarket-delivery/internal/service/orders"
	"foodmarket-delivery/internal/transport/kafka"
)

func makeOrdersKafka(p *orders.Processor) kafka.HandleFunc {
	return p.Handle
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(svc *delivery.Service) *orders.Processor {
			return orders.NewProcessor(svc)
		},
		makeOrdersKafka,
		func(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h, logger)
		},
	)
}

// buildWorker assembles core, db, service and kafka providers.
func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildWorker builds and returns the worker dig container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

// MustBuildWorkerContainer builds the container for the order-events worker.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}
