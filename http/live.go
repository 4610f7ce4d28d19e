package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const liveWriteTimeout = 5 * time.Second

// liveReloadScript reloads the page when the hosting server announces a
// new document.
const liveReloadScript = `<script>(function(){var p=location.protocol==="https:"?"wss://":"ws://";` +
	`var ws=new WebSocket(p+location.host+"/live");ws.onmessage=function(){location.reload();};})();</script>`

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveEvent is sent to every live client when a document is hosted.
type liveEvent struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// liveHub tracks the websocket clients waiting for updates.
type liveHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newLiveHub() *liveHub {
	return &liveHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *liveHub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Clients never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast writes ev to every client, dropping the ones that fail.
func (h *liveHub) broadcast(ev liveEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *liveHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *liveHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.clients, conn)
	}
}

// injectLiveReload inserts the reload script before the closing body tag,
// or appends it when there is none.
func injectLiveReload(html string) string {
	i := strings.LastIndex(html, "</body>")
	if i < 0 {
		i = strings.LastIndex(html, "</BODY>")
	}
	if i >= 0 {
		return html[:i] + liveReloadScript + html[i:]
	}
	return html + liveReloadScript
}
