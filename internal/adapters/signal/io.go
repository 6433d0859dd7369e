package signal

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/avolkov/huddle/internal/app"
)

// Time allowed to write a message to the peer.
const writeWait = 5 * time.Second

// readPump feeds inbound frames into the hub until the connection dies,
// then detaches the session so the hub runs its leave cleanup. It is
// the connection's only reader.
func (ctl *Controller) readPump(sess *app.Session, c *wsConn) {
	defer func() {
		c.Close()
		ctl.hub.Detach(sess)
		log.Info().Str("module", "signal").Str("remote", c.conn.RemoteAddr().String()).Msg("readPump closed")
	}()

	// Pongs must arrive before the write pump's next ping would expire.
	pongWait := ctl.pingPeriod * 10 / 9
	c.conn.SetReadLimit(ctl.readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	lim := rate.NewLimiter(ctl.msgRate, ctl.msgBurst)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("module", "signal").Msg("readPump read error")
			}
			return
		}
		if !lim.Allow() {
			log.Warn().Str("module", "signal").Str("remote", c.conn.RemoteAddr().String()).Msg("message rate exceeded, kicking")
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "rate limit"),
				time.Now().Add(writeWait))
			return
		}
		ctl.hub.Dispatch(sess, data)
	}
}

// writePump drains the send queue and keeps the connection alive with
// pings. It is the connection's only writer.
func (ctl *Controller) writePump(c *wsConn) {
	ticker := time.NewTicker(ctl.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
