package starfield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxRequestBody bounds the JSON body of a regeneration request.
const maxRequestBody = 1 << 16

// errNullBody rejects a JSON null, which decodes without error.
var errNullBody = errors.New("body is null, want an object")

// regenerateBody is the wire form of a regeneration request.
type regenerateBody struct {
	SystemID int   `json:"systemId"`
	Seed     int32 `json:"seed"`
}

// NewHandler returns the HTTP surface of the field: one handler for every
// path and method that decodes {"systemId": n, "seed": s} and submits it to d.
//
// Every decodable request is answered 200 with a plain-text confirmation
// echoing systemId, including requests for star indices that do not exist.
// Those are logged and dropped by the dispatcher but still reported as
// generated.
func NewHandler(d *Dispatcher) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h := regenerateHandler(d)
	r.HandleFunc("/", h)
	r.HandleFunc("/*", h)
	return r
}

func regenerateHandler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := Logger().With("request_id", middleware.GetReqID(r.Context()))
		log.Debug("request received",
			"remote", r.RemoteAddr, "method", r.Method, "url", r.URL.String(),
			"content_type", r.Header.Get("Content-Type"))

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
		if err != nil {
			log.Warn("read request body", "error", err)
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("request body", "body", string(data))

		var decoded *regenerateBody
		if err := json.Unmarshal(data, &decoded); err != nil {
			log.Warn("decode request body", "error", err)
			http.Error(w, "decode body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if decoded == nil {
			log.Warn("decode request body", "error", errNullBody)
			http.Error(w, "decode body: "+errNullBody.Error(), http.StatusBadRequest)
			return
		}
		body := *decoded
		log.Debug("request parsed", "system_id", body.SystemID, "seed", body.Seed)

		if err := d.Submit(body.SystemID, body.Seed); err != nil {
			log.Info("request dropped", "system_id", body.SystemID, "error", err)
		} else {
			log.Info("request accepted", "system_id", body.SystemID, "seed", body.Seed)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, confirmation(body.SystemID))
	}
}

// confirmation is the response text for a request naming systemID.
func confirmation(systemID int) string {
	return fmt.Sprintf("Blob for system %d generated successfully.", systemID)
}

// Server runs the regeneration endpoint on a loopback listener.
type Server struct {
	addr string
	srv  *http.Server
	ln   net.Listener
	done chan error
}

// NewServer creates a server for handler on addr. Nothing listens until Start.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		addr: addr,
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start binds the listener and serves in a background goroutine. Requests
// can be accepted as soon as Start returns.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.ln = ln
	s.done = make(chan error, 1)
	Logger().Info("regeneration endpoint listening", "addr", ln.Addr().String())
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Shutdown stops accepting connections and waits for in-flight handlers
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.done == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-s.done; err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	Logger().Info("regeneration endpoint stopped")
	return nil
}
