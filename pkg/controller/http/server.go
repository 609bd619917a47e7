package http

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	websocket_controller "github.com/secmon-lab/greetr/pkg/controller/websocket"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"github.com/secmon-lab/greetr/pkg/utils/safe"
)

//go:embed page.html
var pageHTML []byte

type Server struct {
	router        *chi.Mux
	websocketCtrl *websocket_controller.Handler
}

type Options func(*Server)

func WithWebSocketHandler(handler *websocket_controller.Handler) Options {
	return func(s *Server) {
		s.websocketCtrl = handler
	}
}

func New(uc UseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	r.Get("/", pageHandler)
	r.Route("/api", func(r chi.Router) {
		r.Get("/greeting", greetingHandler(uc))
		r.Post("/render", renderHandler(uc))
	})

	if s.websocketCtrl != nil {
		r.Get("/ws", s.websocketCtrl.HandlePage)
	}

	return s
}

func (x *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	x.router.ServeHTTP(w, r)
}

func pageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, pageHTML)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(r.Context()).Error("failed to encode response", "error", err)
	}
}
