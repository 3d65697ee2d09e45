package main

import (
	"context"

	"waitline/waitline-queue-server/pkg/events"
	"waitline/waitline-queue-server/pkg/infra"
	"waitline/waitline-queue-server/pkg/monitoring"
	"waitline/waitline-queue-server/pkg/queue"

	"github.com/emirpasic/gods/maps/hashmap"
	"go.uber.org/zap"
)

// Hub fans queue events out to every connected watcher and to the
// redis publisher. It never touches queue state.
type Hub struct {
	// Registered watchers. Key value: client.id -> client.
	clients *hashmap.Map

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	command   *queue.CommandService
	publisher *events.Publisher
	logger    *zap.SugaredLogger
}

func ProvideHub(command *queue.CommandService, publisher *events.Publisher, loggerFactory *infra.LoggerFactory) *Hub {
	return &Hub{
		clients:    hashmap.New(),
		register:   make(chan *Client, 1024),
		unregister: make(chan *Client, 1024),

		command:   command,
		publisher: publisher,
		logger:    loggerFactory.Create("Hub").Sugar(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.logger.Debugf("register client id[%v]", client.id)
			h.clients.Put(client.id, client)
			monitoring.SetQueueWatchers(h.clients.Size())

		case client := <-h.unregister:
			h.logger.Debugf("unregister client id[%v]", client.id)
			if _, ok := h.clients.Get(client.id); !ok {
				continue
			}
			h.removeClient(client)

		case wsMessage := <-h.command.Notify:
			h.logger.Debugf("fanning out event code[%v]", wsMessage.EventCode)
			h.publisher.Publish(context.Background(), wsMessage)

			// If a client's send buffer is full we assume it is dead
			// or stuck and drop it.
			for _, value := range h.clients.Values() {
				client := value.(*Client)
				select {
				case client.sendWsMessage <- wsMessage:
				default:
					h.logger.Warnf("client id[%v] send channel is full, closing it", client.id)
					h.removeClient(client)
				}
			}
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.clients.Remove(client.id)
	client.TryClose()
	monitoring.SetQueueWatchers(h.clients.Size())
}
