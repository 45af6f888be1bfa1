// Package inspect exposes a devtools surface for the reconciliation engine:
// an HTTP endpoint streaming committed pass summaries to connected clients
// over WebSocket, plus health and Prometheus metrics endpoints. It consumes
// only the engine's public output and is entirely optional.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/loom/pkg/fiber"
	"github.com/vango-dev/loom/pkg/reconcile"
)

// Inspector broadcasts commit summaries to WebSocket subscribers.
type Inspector struct {
	logger       *slog.Logger
	gatherer     prometheus.Gatherer
	upgrader     websocket.Upgrader
	writeTimeout time.Duration

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Inspector) {
		in.logger = logger
	}
}

// WithGatherer sets the metrics gatherer backing /metrics.
// Defaults to prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(in *Inspector) {
		in.gatherer = g
	}
}

// WithWriteTimeout bounds each broadcast write. Default: 5 seconds.
func WithWriteTimeout(d time.Duration) Option {
	return func(in *Inspector) {
		in.writeTimeout = d
	}
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	in := &Inspector{
		logger:       slog.Default(),
		gatherer:     prometheus.DefaultGatherer,
		writeTimeout: 5 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		clients: make(map[string]*websocket.Conn),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Routes returns the inspector's HTTP handler:
//
//	GET /healthz  liveness probe
//	GET /metrics  Prometheus metrics
//	GET /stream   WebSocket commit stream
func (in *Inspector) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(in.gatherer, promhttp.HandlerOpts{}))
	r.Get("/stream", in.handleStream)
	return r
}

// ClientCount returns the number of connected stream clients.
func (in *Inspector) ClientCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.clients)
}

func (in *Inspector) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := in.upgrader.Upgrade(w, r, nil)
	if err != nil {
		in.logger.Warn("inspector upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	in.mu.Lock()
	in.clients[id] = conn
	in.mu.Unlock()
	in.logger.Debug("inspector client connected", "client_id", id)

	defer func() {
		in.mu.Lock()
		delete(in.clients, id)
		in.mu.Unlock()
		_ = conn.Close()
		in.logger.Debug("inspector client disconnected", "client_id", id)
	}()

	// Clients are stream-only; read until the connection drops.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// PublishCommit broadcasts a commit summary to every connected client.
// Clients whose write fails are dropped.
func (in *Inspector) PublishCommit(sum CommitSummary) {
	data, err := json.Marshal(sum)
	if err != nil {
		in.logger.Error("inspector marshal failed", "error", err)
		return
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	for id, conn := range in.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(in.writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			in.logger.Warn("inspector write failed; dropping client",
				"client_id", id, "error", err)
			_ = conn.Close()
			delete(in.clients, id)
		}
	}
}

// CommitSummary is the serialized view of one committed pass.
type CommitSummary struct {
	PassID   string          `json:"pass_id"`
	Deadline uint64          `json:"deadline"`
	Units    int             `json:"units"`
	Effects  []EffectSummary `json:"effects"`
}

// EffectSummary is the serialized view of one effect list entry.
type EffectSummary struct {
	Kind  string `json:"kind"`
	Flags string `json:"flags"`
	Key   string `json:"key,omitempty"`
	Tag   string `json:"tag,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Summarize builds a CommitSummary from a pass result, assigning it a fresh
// pass id.
func Summarize(res *reconcile.Result) CommitSummary {
	sum := CommitSummary{
		PassID:   uuid.NewString(),
		Deadline: uint64(res.Deadline),
		Units:    res.Units,
	}
	for _, f := range res.Effects {
		e := EffectSummary{
			Kind:  f.Kind.String(),
			Flags: f.Flags.String(),
			Key:   f.Key,
		}
		switch f.Kind {
		case fiber.KindHost:
			e.Tag, _ = f.Type.(string)
		case fiber.KindText:
			e.Text, _ = f.PendingProps.(string)
		}
		sum.Effects = append(sum.Effects, e)
	}
	return sum
}
