//go:build wireinject
// +build wireinject

package main

import (
	"waitline/waitline-queue-server/pkg/config"
	"waitline/waitline-queue-server/pkg/events"
	"waitline/waitline-queue-server/pkg/infra"
	"waitline/waitline-queue-server/pkg/queue"

	"github.com/google/wire"
)

func Setup() *Server {
	wire.Build(wire.NewSet(
		ProvideServer,
		ProvideApplication,
		ProvideQueueHandler,
		ProvideHub,
		queue.ProvideStore,
		queue.ProvideCommandService,
		queue.ProvideQueryService,
		events.ProvidePublisher,
		config.ProvideConfig,
		infra.ProvideLoggerFactory,
		infra.ProvideRedisClient,
	))
	return nil
}
