package echo

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/lmartinez/contact-upload/internal/application/progress"
)

type ProgressHandler struct {
	broadcaster *progress.Broadcaster
	upgrader    websocket.Upgrader
	log         *slog.Logger
}

func NewProgressHandler(broadcaster *progress.Broadcaster, log *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// wsListener adapts a websocket connection to the broadcaster contract.
// All writes go through the broadcaster lock, which satisfies the
// one-writer-at-a-time rule of the underlying connection.
type wsListener struct {
	conn *websocket.Conn
}

func (l *wsListener) Send(event progress.Event) error {
	return l.conn.WriteJSON(event)
}

// Stream upgrades the request and keeps the connection registered until
// the client goes away. Disconnects are also detected lazily by the
// broadcaster on the next failed send.
func (h *ProgressHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	listener := &wsListener{conn: conn}
	h.broadcaster.Register(listener)
	h.log.Info("progress listener connected", "listeners", h.broadcaster.Len())

	defer func() {
		h.broadcaster.Unregister(listener)
		conn.Close()
		h.log.Info("progress listener disconnected", "listeners", h.broadcaster.Len())
	}()

	// Clients only listen; reads exist to notice the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
