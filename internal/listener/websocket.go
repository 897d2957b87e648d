package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-pixelmmo/internal/player"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 64 * 1024
	maxCloseReason = 120
)

// PlayerCounter reports how many players are connected.
type PlayerCounter interface {
	PlayerCount() int
}

// WebsocketListener serves the game over websockets on /ws and a liveness
// check on /health.
type WebsocketListener struct {
	port     uint16
	cm       *ConnectionManager
	counter  PlayerCounter
	upgrader websocket.Upgrader

	wg sync.WaitGroup
}

func NewWebsocketListener(port uint16, cm *ConnectionManager, counter PlayerCounter, allowedOrigins []string) *WebsocketListener {
	return &WebsocketListener{
		port:    port,
		cm:      cm,
		counter: counter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	return l.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then waits for
// every session to end.
func (l *WebsocketListener) Serve(ctx context.Context, ln net.Listener) error {
	connCtx, cancelConns := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelConns()

	srv := &http.Server{
		Handler:           l.Handler(connCtx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.InfoContext(ctx, "listening for websockets", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		cancelConns()
		l.wg.Wait()
		return fmt.Errorf("serving websockets: %w", err)
	case <-ctx.Done():
	}

	// Hijacked websocket connections are not tracked by Shutdown.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.WarnContext(ctx, "shutting down http server", "error", err)
	}
	cancelConns()
	l.wg.Wait()
	return nil
}

// Handler routes /ws and /health. Sessions run under ctx.
func (l *WebsocketListener) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", l.handleHealth)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		l.handleWebsocket(ctx, w, r)
	})
	return mux
}

func (l *WebsocketListener) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"players": l.counter.PlayerCount(),
	})
	if err != nil {
		slog.WarnContext(r.Context(), "writing health response", "error", err)
	}
}

func (l *WebsocketListener) handleWebsocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)

	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.DebugContext(ctx, "websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}

	l.wg.Add(1)
	defer l.wg.Done()
	defer func() { _ = ws.Close() }()

	ws.SetReadLimit(maxMessageSize)
	conn := &wsConn{ws: ws}

	// Unblock the session's reader when the listener shuts down.
	stop := context.AfterFunc(ctx, func() {
		conn.close(websocket.CloseGoingAway, "server shutting down")
	})
	defer stop()

	rejected, err := l.cm.AcceptConnection(ctx, conn, token)
	switch {
	case rejected:
		conn.close(websocket.ClosePolicyViolation, closeReason(err))
	case errors.Is(err, player.ErrSlowConsumer):
		conn.close(websocket.CloseTryAgainLater, "too far behind")
	case err != nil:
		conn.close(websocket.CloseInternalServerErr, "internal error")
	default:
		conn.close(websocket.CloseNormalClosure, "")
	}
}

// tokenFromRequest reads a bearer token from the Authorization header or
// the token query parameter.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	return r.URL.Query().Get("token")
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// closeReason keeps close frames under the 123 byte control frame limit.
func closeReason(err error) string {
	reason := err.Error()
	if len(reason) <= maxCloseReason {
		return reason
	}
	n := maxCloseReason
	for n > 0 && !utf8.RuneStart(reason[n]) {
		n--
	}
	return reason[:n]
}

// wsConn adapts a gorilla connection to text messages with write deadlines.
type wsConn struct {
	ws *websocket.Conn

	writeMu sync.Mutex
	closed  bool
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if mt == websocket.TextMessage || mt == websocket.BinaryMessage {
			return data, nil
		}
	}
}

func (c *wsConn) WriteMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// close sends a close frame once and unblocks any pending read.
func (c *wsConn) close(code int, reason string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
	_ = c.ws.SetReadDeadline(time.Now())
}
