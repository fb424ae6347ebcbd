package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wordimpostor/internal/room"
	"wordimpostor/internal/ws"
)

// Handler holds the dependencies of the HTTP surface.
type Handler struct {
	coord     *room.Coordinator
	hub       *ws.Hub
	publicURL string
	log       zerolog.Logger
}

// New creates the HTTP handler set.
func New(coord *room.Coordinator, hub *ws.Hub, publicURL string, log zerolog.Logger) *Handler {
	return &Handler{coord: coord, hub: hub, publicURL: publicURL, log: log}
}

// Router mounts all routes.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.hub.ServeWS).Methods(http.MethodGet)
	r.HandleFunc("/qr/{roomID}", h.handleQR).Methods(http.MethodGet)
	r.HandleFunc("/roomcode", h.handleRoomCode).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
