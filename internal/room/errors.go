package room

import "errors"

// Rejections reported back to the offending caller. They never mutate state.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrWrongPassword  = errors.New("incorrect password")
	ErrGameInProgress = errors.New("game already in progress")
	ErrPlayerNotFound = errors.New("player not found")
)
