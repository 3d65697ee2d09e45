package main

import (
	"time"

	"waitline/waitline-queue-server/pkg/config"
	"waitline/waitline-queue-server/pkg/infra"
	"waitline/waitline-queue-server/pkg/msg"
	"waitline/waitline-queue-server/pkg/queue"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Application struct {
	config     *config.Config
	hub        *Hub
	query      *queue.QueryService
	wsUpgrader *websocket.Upgrader
	logger     *zap.SugaredLogger
}

func ProvideApplication(cfg *config.Config, hub *Hub, query *queue.QueryService, loggerFactory *infra.LoggerFactory) *Application {
	return &Application{
		config:     cfg,
		hub:        hub,
		query:      query,
		wsUpgrader: &websocket.Upgrader{},
		logger:     loggerFactory.Create("Application").Sugar(),
	}
}

func (a *Application) Run() {
	go a.hub.Run()
}

// HandleWs upgrades a watcher connection. The watcher gets a snapshot
// of the current line right away, then every queue event as it
// happens.
func (a *Application) HandleWs(c echo.Context) error {
	conn, err := a.wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:            uuid.NewString(),
		conn:          conn,
		sendWsMessage: make(chan *msg.WsMessage, *a.config.ClientSendBufferSize),
		close:         make(chan struct{}),
		pingPeriod:    time.Duration(*a.config.PingIntervalSeconds) * time.Second,
		hub:           a.hub,
	}
	a.hub.register <- client
	client.Run()

	wsMessage, err := msg.NewWsMessage(msg.SnapshotCode, &msg.SnapshotEvent{
		Tickets: ticketViews(a.query.ListActive()),
	})
	if err != nil {
		a.logger.Errorf("cannot marshal snapshot event %v", err)
		return nil
	}
	client.sendWsMessage <- wsMessage

	return nil
}
