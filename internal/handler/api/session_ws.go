package api

import (
	"net/http"
	"time"

	"KIndex/internal/domain/models"
	xlogger "KIndex/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is same-origin or embedded; tick data is public.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeTimeout = 5 * time.Second

// SessionWS streams countdown ticks over a WebSocket, one JSON frame per
// second. The connection closes when the client goes away or a write fails.
func (h *DashboardEchoHandler) SessionWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// Drain the read side so close frames and pings are processed; the
	// stream is write-only from our end.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = h.countdown.Run(ctx, time.Second, func(tick models.CountdownTick) error {
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return err
		}
		return conn.WriteJSON(tick)
	})
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.logger.Debug("session stream ended", xlogger.Error(err))
	}
	return nil
}
