package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

const WRITE_TIMEOUT = 5 * time.Second

var ErrTooSlow = errors.New("connection too slow to keep up with messages")

func WriteTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Write(ctx, websocket.MessageBinary, msg)
}

// Server exposes the hub over websockets on /feed and a liveness probe on
// /healthz.
type Server struct {
	hub        *Hub
	mux        *http.ServeMux
	httpServer *http.Server
}

func NewServer(hub *Hub) *Server {
	server := &Server{
		hub: hub,
		mux: http.NewServeMux(),
	}
	server.mux.HandleFunc("/feed", server.handleFeed)
	server.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %d\n", hub.Subscribers())
	})
	return server
}

func (server *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	server.mux.ServeHTTP(w, r)
}

func (server *Server) HandleClient(ctx context.Context, c *websocket.Conn, host string) error {
	// Spectators never send anything; this only watches for the close
	ctx = c.CloseRead(ctx)

	subscriber := server.hub.Subscribe()
	defer subscriber.Done()

	logger := log.With().Str("host", host).Logger()
	logger.Info().Msg("spectator joined")

	for {
		select {
		case msg := <-subscriber.Recv():
			err := WriteTimeout(ctx, WRITE_TIMEOUT, c, msg)
			if err != nil {
				logger.Error().Msg("spectator missed write timeout; disconnecting")
				return err
			}
		case <-subscriber.Slow():
			c.Close(websocket.StatusPolicyViolation, ErrTooSlow.Error())
			return ErrTooSlow
		case <-ctx.Done():
			logger.Info().Msg("spectator left")
			return ctx.Err()
		}
	}
}

func (server *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})

	if err != nil {
		log.Error().Err(err).Msg("error accepting spectator connection")
		return
	}

	defer c.Close(websocket.StatusInternalError, "operational fault during feed")

	hostname := r.RemoteAddr

	original, ok := r.Header["X-Forwarded-For"]
	if ok {
		hostname = original[0]
	}

	err = server.HandleClient(r.Context(), c, hostname)
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrTooSlow) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("feed connection closed with error")
	}
}

// Serve listens on addr until ctx is cancelled.
func (server *Server) Serve(ctx context.Context, addr string) error {
	listen, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error().Err(err).Msg("failed to bind feed port")
		return err
	}

	log.Info().Msgf("feed listening on ws://%v/feed", listen.Addr())

	server.httpServer = &http.Server{
		Handler: server,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.httpServer.Shutdown(shutdownCtx)
	}()

	err = server.httpServer.Serve(listen)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
