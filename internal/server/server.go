package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/steering/internal/core/observability/log"
	"github.com/zeusync/steering/internal/core/sim"
)

// Server runs a World on a wall-clock ticker and streams its frames.
type Server struct {
	config Config
	logger log.Log
	world  *sim.World
	hub    *hub

	httpServer *http.Server
	listener   net.Listener

	running int32 // atomic bool
	closed  int32 // atomic bool

	workerGroup sync.WaitGroup
	stopChan    chan struct{}
}

// Config holds server configuration
type Config struct {
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`

	// TickRate is the wall-clock interval between simulation steps.
	TickRate time.Duration `json:"tick_rate" yaml:"tick_rate"`

	// DeltaTime is the simulated time advanced per step, in seconds.
	DeltaTime float64 `json:"delta_time" yaml:"delta_time"`

	// BroadcastBuffer is the number of frames queued per websocket client.
	BroadcastBuffer int           `json:"broadcast_buffer" yaml:"broadcast_buffer"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// ControlToken, when set, is required as a bearer token on mutating endpoints.
	ControlToken string `json:"control_token" yaml:"control_token"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		TickRate:        time.Second / 60,
		DeltaTime:       1.0 / 60,
		BroadcastBuffer: 64,
		WriteTimeout:    5 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive", ErrInvalidConfig)
	}
	if c.DeltaTime <= 0 {
		return fmt.Errorf("%w: delta time must be positive", ErrInvalidConfig)
	}
	if c.BroadcastBuffer <= 0 {
		return fmt.Errorf("%w: broadcast buffer must be positive", ErrInvalidConfig)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("%w: write timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// NewServer creates a server for world. It does not start listening.
func NewServer(config Config, world *sim.World, logger log.Log) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Server{
		config:   config,
		logger:   logger.With(log.String("component", "server")),
		world:    world,
		hub:      newHub(),
		stopChan: make(chan struct{}),
	}, nil
}

// Start binds the listener and launches the HTTP and tick workers.
func (s *Server) Start(ctx context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.workerGroup.Add(2)
	go s.serveWorker(listener)
	go s.tickWorker(ctx)

	s.logger.Info("server started",
		log.String("addr", listener.Addr().String()),
		log.Duration("tick_rate", s.config.TickRate),
		log.Int("agents", s.world.Len()),
	)
	return nil
}

// Stop shuts down the workers and disconnects all clients.
func (s *Server) Stop() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return ErrServerClosed
	}
	if atomic.LoadInt32(&s.running) == 0 {
		return nil
	}

	close(s.stopChan)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)

	s.hub.closeAll()
	s.workerGroup.Wait()
	atomic.StoreInt32(&s.running, 0)

	s.logger.Info("server stopped", log.Int64("dropped_frames", int64(s.hub.droppedFrames())))
	return err
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) serveWorker(listener net.Listener) {
	defer s.workerGroup.Done()
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("http server failed", log.Error(err))
	}
}

func (s *Server) tickWorker(ctx context.Context) {
	defer s.workerGroup.Done()

	ticker := time.NewTicker(s.config.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if err := s.tick(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("tick failed", log.Error(err))
			}
		}
	}
}

// tick advances the world one step and broadcasts the resulting frame.
func (s *Server) tick(ctx context.Context) error {
	if err := s.world.Step(ctx, s.config.DeltaTime); err != nil {
		return err
	}
	frame, err := json.Marshal(s.world.Snapshot())
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	s.hub.broadcast(frame)
	return nil
}
