// Package signal adapts a websocket connection to the hub: it upgrades
// the HTTP request, frames JSON messages in and out, and reports the
// close that ends the session.
package signal

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/avolkov/huddle/internal/app"
	"github.com/avolkov/huddle/internal/config"
	"github.com/avolkov/huddle/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

const sendQueueSize = 32

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Controller struct {
	hub        *app.Hub
	readLimit  int64
	pingPeriod time.Duration
	msgRate    rate.Limit
	msgBurst   int
}

func NewController(hub *app.Hub, cfg *config.Config) *Controller {
	return &Controller{
		hub:        hub,
		readLimit:  cfg.ReadLimit,
		pingPeriod: cfg.PingPeriod,
		msgRate:    rate.Limit(cfg.MsgRate),
		msgBurst:   cfg.MsgBurst,
	}
}

// wsConn is the core.Sender for one websocket: a buffered send channel
// drained by the write pump, so the hub never blocks on a peer's I/O.
type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleWS upgrades the request and starts the connection's pumps.
func (ctl *Controller) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("remote", ws.RemoteAddr().String()).Msg("new WS connection")

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, sendQueueSize),
	}
	sess := app.NewSession(conn)

	go ctl.writePump(conn)
	go ctl.readPump(sess, conn)
}
