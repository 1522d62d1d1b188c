package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	maxClientMessage = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream handles GET /api/v1/stream.
//
// It upgrades to a websocket, sends the latest dashboard (when one exists)
// and then every dashboard the refresh driver publishes. Client messages are
// read only to detect disconnects.
//
// Stream godoc
// @Summary      Live dashboard stream
// @Description  Websocket; each text frame is a JSON dto.Dashboard
// @Tags         dashboard
// @Success      101  {object}  dto.Dashboard
// @Router       /api/v1/stream [get]
func (h *Handler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.dashboards.Subscribe()
	defer unsubscribe()

	gone := make(chan struct{})
	go drain(conn, gone)

	log := logger.L().With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Debug().Msg("stream client connected")
	defer log.Debug().Msg("stream client disconnected")

	if dash, ok := h.dashboards.Latest(); ok {
		if err := writeDashboard(conn, dash); err != nil {
			return
		}
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case dash, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return
			}
			if err := writeDashboard(conn, dash); err != nil {
				log.Debug().Err(err).Msg("stream write failed")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

func writeDashboard(conn *websocket.Conn, dash dto.Dashboard) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(dash)
}

// drain reads until the client goes away, keeping the read deadline fresh on pongs.
func drain(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)
	conn.SetReadLimit(maxClientMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
