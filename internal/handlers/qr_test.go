package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordimpostor/internal/room"
	"wordimpostor/internal/wordbank"
	"wordimpostor/internal/ws"
)

func newTestHandler(t *testing.T) (*Handler, *room.Coordinator) {
	t.Helper()
	bank, err := wordbank.New([]wordbank.Category{{
		Name:  "Animals",
		Words: []wordbank.WordEntry{{Word: "Dog", ImpostorClue: "Common pet"}},
	}})
	require.NoError(t, err)
	coord := room.NewCoordinator(room.NewRegistry(), bank, room.NewSeededRand(1), zerolog.Nop())
	hub := ws.NewHub(coord, zerolog.Nop())
	return New(coord, hub, "http://localhost:8080", zerolog.Nop()), coord
}

func TestQRUnknownRoom(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/qr/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQRForLiveRoom(t *testing.T) {
	h, coord := newTestHandler(t)
	coord.CreateRoom("p1", "room1", "pw")

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/qr/room1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestRoomCodeSuggestion(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roomcode", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roomId")
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
