package badge

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin enforcement is the reverse proxy's job
	},
}

// WSHandler upgrades the connection and streams the session user's
// badge events until the client goes away. Incoming messages are
// ignored. userOf extracts the user id the socket is scoped to; the
// route is expected to sit behind the session guard.
func WSHandler(hub *Hub, userOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := userOf(c)

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.AddWS(ws, userID)
		log.Infof("[badge-ws] client connected (user %s)", userID)

		_ = ws.WriteMessage(
			websocket.TextMessage,
			[]byte(`{"type":"welcome","transport":"websocket"}`+"\n"),
		)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		log.Info("[badge-ws] client disconnected")
	}
}
