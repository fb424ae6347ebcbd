package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"
)

// handleQR renders a QR code for a room's join link so the host can share
// it on a screen.
func (h *Handler) handleQR(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomID"]
	if !h.coord.RoomExists(roomID) {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	joinURL := fmt.Sprintf("%s/join?room=%s", h.publicURL, roomID)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		h.log.Error().Str("room", roomID).Err(err).Msg("encoding qr code")
		http.Error(w, "failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleRoomCode suggests an unused room code for the create-room flow.
func (h *Handler) handleRoomCode(w http.ResponseWriter, r *http.Request) {
	code := h.coord.Registry().UniqueCode()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"roomId": code})
}
