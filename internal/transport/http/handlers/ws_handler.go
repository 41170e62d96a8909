package handlers

import (
	"context"
	"sync"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/core/services"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/gofiber/contrib/websocket"
)

type wsClientMessage struct {
	Type   string `json:"type"`
	TaskID string `json:"task_id"`
}

type wsServerMessage struct {
	Type    string                    `json:"type"`
	TaskID  string                    `json:"task_id,omitempty"`
	Payload *ports.TaskStatusSnapshot `json:"payload,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// WSHandler streams task status updates over a websocket. Clients subscribe
// per task id and receive a snapshot on every status change.
type WSHandler struct {
	orc    ports.Orchestrator
	hub    *services.SubscriberHub
	logger *logger.Logger
}

func NewWSHandler(orc ports.Orchestrator, hub *services.SubscriberHub, logger *logger.Logger) *WSHandler {
	return &WSHandler{orc: orc, hub: hub, logger: logger}
}

func (h *WSHandler) Handle(c *websocket.Conn) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		_ = c.WriteJSON(wsServerMessage{Type: "error", Error: "unauthenticated"})
		_ = c.Close()
		return
	}

	var writeMu sync.Mutex
	send := func(msg wsServerMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := c.WriteJSON(msg); err != nil {
			h.logger.Warnw("ws_write_failed", "user_id", userID, "error", err)
		}
	}

	subs := make(map[string]chan ports.TaskStatusSnapshot)
	var wg sync.WaitGroup
	defer func() {
		for taskID, ch := range subs {
			h.hub.Unsubscribe(taskID, ch)
		}
		wg.Wait()
	}()

	for {
		var msg wsClientMessage
		if err := c.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "subscribe_task":
			if _, ok := subs[msg.TaskID]; ok {
				continue
			}
			snap, err := h.orc.Status(context.Background(), msg.TaskID, userID)
			if err != nil {
				send(wsServerMessage{Type: "error", TaskID: msg.TaskID, Error: "task not found"})
				continue
			}

			ch := h.hub.Subscribe(msg.TaskID)
			subs[msg.TaskID] = ch
			send(wsServerMessage{Type: "task_update", TaskID: msg.TaskID, Payload: snap})

			wg.Add(1)
			go func(taskID string, ch chan ports.TaskStatusSnapshot) {
				defer wg.Done()
				for update := range ch {
					update := update
					send(wsServerMessage{Type: "task_update", TaskID: taskID, Payload: &update})
				}
			}(msg.TaskID, ch)

		case "unsubscribe_task":
			if ch, ok := subs[msg.TaskID]; ok {
				h.hub.Unsubscribe(msg.TaskID, ch)
				delete(subs, msg.TaskID)
			}

		default:
			send(wsServerMessage{Type: "error", Error: "unknown message type"})
		}
	}
}
