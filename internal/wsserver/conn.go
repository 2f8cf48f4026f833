package wsserver

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"storefront/internal/domain"
	"storefront/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// inbound is the wire envelope around a decoded request.
type inbound struct {
	ServerMSG session.Request `json:"serverMSG"`
}

// initPayload is pushed to every client right after the connection is
// established.
type initPayload struct {
	Cmd         string        `json:"cmd"`
	Logo        string        `json:"logo"`
	Departments []string      `json:"departments"`
	Featured    []domain.Item `json:"featured"`
}

// serveWS upgrades the request and runs the connection's message loop.
// Messages are handled one at a time per connection; a malformed message
// is logged and dropped without closing the connection.
func serveWS(logger *log.Logger, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Printf("websocket upgrade: %v", err)
			return
		}

		sessionID := uuid.NewString()
		logger.Printf("client connected (session %s)", sessionID)
		if deps.Metrics != nil {
			deps.Metrics.ConnectionsTotal.Inc()
			deps.Metrics.ConnectionsOpen.Inc()
		}

		defer func() {
			deps.Handler.Drop(sessionID)
			conn.Close()
			if deps.Metrics != nil {
				deps.Metrics.ConnectionsOpen.Dec()
			}
			logger.Printf("client disconnected (session %s)", sessionID)
		}()

		init := initPayload{
			Cmd:         "init",
			Logo:        base64.StdEncoding.EncodeToString(deps.Logo),
			Departments: deps.Catalog.Departments(),
			Featured:    []domain.Item{},
		}
		if err := conn.WriteJSON(init); err != nil {
			logger.Printf("session %s: write init: %v", sessionID, err)
			return
		}

		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}

			var msg inbound
			if err := json.Unmarshal(data, &msg); err != nil {
				logger.Printf("session %s: malformed message: %v", sessionID, err)
				continue
			}
			if deps.Metrics != nil {
				deps.Metrics.MessagesTotal.WithLabelValues(msg.ServerMSG.Method).Inc()
			}

			if resp := deps.Handler.Handle(sessionID, msg.ServerMSG); resp != nil {
				if err := conn.WriteJSON(resp); err != nil {
					logger.Printf("session %s: write response: %v", sessionID, err)
					return
				}
			}
		}
	}
}
