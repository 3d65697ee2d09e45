package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"waitline/waitline-queue-server/pkg/infra"
	"waitline/waitline-queue-server/pkg/msg"
	"waitline/waitline-queue-server/pkg/queue"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type QueueHandler struct {
	command *queue.CommandService
	query   *queue.QueryService
	logger  *zap.SugaredLogger
}

func ProvideQueueHandler(command *queue.CommandService, query *queue.QueryService, loggerFactory *infra.LoggerFactory) *QueueHandler {
	return &QueueHandler{
		command: command,
		query:   query,
		logger:  loggerFactory.Create("QueueHandler").Sugar(),
	}
}

func (h *QueueHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ListTickets returns the waiting tickets in insertion order, not
// position order; consumers sort by position if they need a ranked
// view.
func (h *QueueHandler) ListTickets(c echo.Context) error {
	return c.JSON(http.StatusOK, ticketViews(h.query.ListActive()))
}

func (h *QueueHandler) GetTicket(c echo.Context) error {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("position must be an integer"))
	}

	ticket, err := h.query.GetByPosition(position)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody(fmt.Sprintf("no active ticket at position %v", position)))
	}

	return c.JSON(http.StatusOK, msg.TicketView{
		Position:    ticket.Position,
		Name:        ticket.Name,
		ArrivalTime: ticket.ArrivalTime,
	})
}

func (h *QueueHandler) AddTicket(c echo.Context) error {
	var req struct {
		Name          string `json:"name"`
		PriorityClass string `json:"priorityClass"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	position, err := h.command.AddTicket(req.Name, req.PriorityClass)
	if err != nil {
		var validationErr *queue.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, errorBody(validationErr.Error()))
		}
		h.logger.Errorf("add ticket failed %v", err)
		return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":  fmt.Sprintf("%v added to queue", req.Name),
		"position": position,
	})
}

func (h *QueueHandler) AdvanceQueue(c echo.Context) error {
	changed := h.command.AdvanceQueue()
	return c.JSON(http.StatusOK, map[string]any{
		"message": "queue advanced",
		"changed": changed,
	})
}

func (h *QueueHandler) RemoveTicket(c echo.Context) error {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("position must be an integer"))
	}

	removed, err := h.command.RemoveTicket(position)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody(fmt.Sprintf("no active ticket at position %v", position)))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("removed %v from position %v", removed.Name, position),
	})
}

func (h *QueueHandler) QueueStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.query.Stats())
}

func errorBody(detail string) map[string]string {
	return map[string]string{"error": detail}
}

func ticketViews(tickets []*queue.Ticket) []msg.TicketView {
	views := make([]msg.TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		views = append(views, msg.TicketView{
			Position:    ticket.Position,
			Name:        ticket.Name,
			ArrivalTime: ticket.ArrivalTime,
		})
	}
	return views
}
