package room

import (
	"sync"

	"wordimpostor/internal/game"
)

// handle pairs a room's state with the mutex that serializes its commands.
// Every command for a room, including its auto-triggered transitions, runs
// to completion under this lock before the next command is processed.
type handle struct {
	mu    sync.Mutex
	state *game.GameState
}

// Registry owns every live room's GameState. Rooms are independent; the
// registry lock only guards the map itself.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*handle
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*handle)}
}

func (r *Registry) get(roomID string) (*handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.rooms[roomID]
	return h, ok
}

func (r *Registry) set(roomID string, state *game.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[roomID] = &handle{state: state}
}

// Delete removes a room. Intended for idle-room sweeping by the owner.
func (r *Registry) Delete(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, roomID)
}

// Exists reports whether a room id is registered.
func (r *Registry) Exists(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
