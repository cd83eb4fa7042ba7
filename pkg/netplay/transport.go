package netplay

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"
)

// Listen waits for a single peer to connect over TCP.
func Listen(ctx context.Context, address string) (net.Conn, error) {
	var config net.ListenConfig
	listener, err := config.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	return accept(ctx, listener)
}

func accept(ctx context.Context, listener net.Listener) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}

	done := make(chan result, 1)
	go func() {
		conn, err := listener.Accept()
		done <- result{conn, err}
	}()

	select {
	case r := <-done:
		if r.err == nil {
			log.Debug().Str("remote", r.conn.RemoteAddr().String()).Msg("peer connected")
		}
		return r.conn, r.err
	case <-ctx.Done():
		listener.Close()
		return nil, ctx.Err()
	}
}

func Dial(ctx context.Context, address string) (net.Conn, error) {
	var dialer net.Dialer
	return dialer.DialContext(ctx, "tcp", address)
}

// WSHandler upgrades requests to binary websocket connections and hands them
// to conns. The request is held open until the connection's context ends.
func WSHandler(ctx context.Context, conns chan<- net.Conn) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Error().Err(err).Msg("error accepting peer connection")
			return
		}

		connCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		conn := websocket.NetConn(connCtx, c, websocket.MessageBinary)
		select {
		case conns <- conn:
		case <-connCtx.Done():
			c.Close(websocket.StatusGoingAway, "not accepting peers")
			return
		}

		<-connCtx.Done()
	})
}

// ListenWS serves a websocket endpoint on address and returns the first peer
// that connects. The server shuts down once ctx ends.
func ListenWS(ctx context.Context, address string) (net.Conn, error) {
	var config net.ListenConfig
	listener, err := config.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}

	conns := make(chan net.Conn, 1)
	server := &http.Server{Handler: WSHandler(ctx, conns)}

	failed := make(chan error, 1)
	go func() {
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	select {
	case conn := <-conns:
		return conn, nil
	case err := <-failed:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func DialWS(ctx context.Context, url string) (net.Conn, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return websocket.NetConn(ctx, c, websocket.MessageBinary), nil
}
