// Package conn implements the per-connection state machine: one goroutine
// owns one accepted TCP connection end to end, reading frames, dispatching
// them through the packet registry for the connection's current state, and
// writing whatever response the state's handler produces.
package conn

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/sycrosity/statik/config"
	"github.com/sycrosity/statik/framing"
	"github.com/sycrosity/statik/middleware"
	"github.com/sycrosity/statik/packet"
	"github.com/sycrosity/statik/player"
	"github.com/sycrosity/statik/wire"
)

// dispatchTimeout bounds how long a single packet's handler may run, via
// middleware.TimeoutMiddleware. A template render or write that wedges
// trips this rather than hanging the connection's goroutine forever.
const dispatchTimeout = 5 * time.Second

// ShutdownSignal is the broadcast handle a supervisor.Server shares with
// every Connection it spawns. Closing C wakes every connection blocked in
// Run at once; Reason is only safe to read after a receive on C, since the
// sender sets it before closing the channel.
type ShutdownSignal struct {
	C      <-chan struct{}
	Reason string
}

// Connection owns one accepted connection. It is read and dispatched
// sequentially, never fanned out per packet — Status's Ping/Pong exchange
// depends on strict request/response ordering on a single socket.
type Connection struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer

	state  packet.State
	player player.Player

	cfg      *config.Store
	icon     string // base64-encoded favicon, "" if none configured
	log      *zap.Logger
	shutdown *ShutdownSignal
}

// New wraps an accepted net.Conn. icon is the already base64-encoded
// favicon payload computed once at startup, shared by every connection.
// shutdown is the supervisor's broadcast handle for graceful shutdown.
func New(c net.Conn, cfg *config.Store, icon string, log *zap.Logger, shutdown *ShutdownSignal) *Connection {
	return &Connection{
		conn:     c,
		reader:   bufio.NewReader(c),
		writer:   bufio.NewWriter(c),
		state:    packet.StateHandshake,
		cfg:      cfg,
		icon:     icon,
		log:      log.With(zap.String("remote", c.RemoteAddr().String())),
		shutdown: shutdown,
	}
}

// RemoteAddr exposes the peer address for the supervisor's logging.
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the underlying socket. Safe to call more than once.
func (c *Connection) Close() error {
	return c.conn.Close()
}

// frameResult is the outcome of one ReadFrame call, delivered across a
// goroutine boundary so Run can race it against a shutdown broadcast.
type frameResult struct {
	body []byte
	err  error
}

// Run drives the connection's main loop: fill, extract, dispatch, respond,
// repeat — until the client disconnects, a protocol error occurs, the
// handler signals the exchange is complete, ctx is found cancelled before
// the next read, or the supervisor broadcasts a shutdown. ReadFrame blocks
// on the underlying socket with no notion of the shutdown broadcast, so
// each read runs in its own goroutine and Run selects on the read result
// or the broadcast, whichever fires first; ctx is not part of that select.
// A read left running past a shutdown is abandoned once the supervisor
// force-closes the socket behind it.
func (c *Connection) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		maxSize := c.maxPacketSize()

		frames := make(chan frameResult, 1)
		go func() {
			body, err := framing.ReadFrame(c.reader, maxSize)
			frames <- frameResult{body, err}
		}()

		select {
		case res := <-frames:
			if res.err != nil {
				return res.err
			}
			done, err := c.dispatch(ctx, res.body)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case <-c.shutdown.C:
			c.handleShutdown()
			return nil
		}
	}
}

func (c *Connection) maxPacketSize() int {
	size := c.cfg.Snapshot().MC.MaxPacketSize
	if size <= 0 || size > packet.MaxPacketSize {
		return packet.MaxPacketSize
	}
	return size
}

// dispatch decodes the leading id varint and runs the state handler for
// it through the logging/timeout middleware chain.
func (c *Connection) dispatch(ctx context.Context, body []byte) (done bool, err error) {
	r := bytes.NewReader(body)
	id, err := wire.DecodeVarInt(r)
	if err != nil {
		return true, fmt.Errorf("reading packet id: %w", err)
	}

	chain := middleware.Chain(
		middleware.LoggingMiddleware(c.log),
		middleware.TimeoutMiddleware(dispatchTimeout),
	)

	handler := chain(func(ctx context.Context, state string, packetID int32) middleware.Result {
		done, err := c.route(packetID, r)
		return middleware.Result{Done: done, Err: err}
	})

	result := handler(ctx, c.state.String(), id)
	return result.Done, result.Err
}

// route sends the decoded body to the handler for the connection's
// current state. The state machine never returns to Handshake; Status ends
// the exchange after the Pong, and Login after its single Disconnect.
func (c *Connection) route(id int32, r io.Reader) (done bool, err error) {
	switch c.state {
	case packet.StateHandshake:
		return c.handleHandshake(id, r)
	case packet.StateStatus:
		return c.handleStatus(id, r)
	case packet.StateLogin:
		return c.handleLogin(id, r)
	default:
		return true, fmt.Errorf("received packet 0x%02X in unreachable state %s", id, c.state)
	}
}

// writePacket frames and flushes a single response packet.
func (c *Connection) writePacket(p packet.Packet) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return fmt.Errorf("encoding %T: %w", p, err)
	}
	if err := framing.WriteFrame(c.writer, buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame for %T: %w", p, err)
	}
	return c.writer.Flush()
}
