package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"kangenshare/internal/domain/entity"
	ws "kangenshare/internal/infrastructure/websocket"
	"kangenshare/internal/usecase"
	"kangenshare/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager             *ws.Manager
	notificationUseCase *usecase.NotificationUseCase
	requestUseCase      *usecase.RequestUseCase
	userUseCase         *usecase.UserUseCase
}

func NewWebSocketHandler(
	manager *ws.Manager,
	notificationUseCase *usecase.NotificationUseCase,
	requestUseCase *usecase.RequestUseCase,
	userUseCase *usecase.UserUseCase,
) *WebSocketHandler {
	return &WebSocketHandler{
		manager:             manager,
		notificationUseCase: notificationUseCase,
		requestUseCase:      requestUseCase,
		userUseCase:         userUseCase,
	}
}

// Connect upgrades the request and streams live notification snapshots,
// unread counters and, for hosts, the pending request count. Each push
// carries the full current state so a client can render without
// replaying intermediate events.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	uid := c.Get("uid").(string)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed for %s: %v", uid, err)
		return err
	}

	// Streams outlive the upgrade request; they are cancelled when the
	// connection's read pump returns.
	ctx, cancel := context.WithCancel(context.Background())

	notifications, err := h.notificationUseCase.Subscribe(ctx, uid)
	if err != nil {
		logger.Error("Failed to open notification stream for %s: %v", uid, err)
		cancel()
		conn.Close()
		return nil
	}

	// Register only once the stream is up, so a failed subscribe never
	// leaves a client behind in the manager.
	client := &ws.Client{
		UserID: uid,
		Conn:   conn,
		Send:   make(chan []byte, 64),
	}
	h.manager.Register <- client

	go func() {
		for snapshot := range notifications {
			unread, unreadMessages := entity.UnreadCounts(snapshot)
			h.manager.SendToUser(uid, ws.Event{Type: "notifications", Payload: snapshot})
			h.manager.SendToUser(uid, ws.Event{
				Type: "unread_counts",
				Payload: map[string]int{
					"unread":         unread,
					"unreadMessages": unreadMessages,
				},
			})
		}
	}()

	if user, err := h.userUseCase.GetUserByID(ctx, uid); err == nil && user.IsHost() {
		pending, err := h.requestUseCase.SubscribePendingCount(ctx, uid)
		if err != nil {
			logger.Warn("Failed to open pending request stream for %s: %v", uid, err)
		} else {
			go func() {
				for count := range pending {
					h.manager.SendToUser(uid, ws.Event{
						Type:    "pending_requests",
						Payload: map[string]int{"count": count},
					})
				}
			}()
		}
	}

	go client.WritePump()
	go func() {
		client.ReadPump(h.manager)
		cancel()
	}()

	return nil
}
