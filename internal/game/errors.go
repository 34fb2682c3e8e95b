package game

import "errors"

// Command rejections. None of these are fatal to the room: a rejected
// command leaves state untouched and the caller may re-issue once the
// precondition holds.
var (
	ErrNotHost         = errors.New("caller is not the host")
	ErrNotMember       = errors.New("caller is not in the room")
	ErrGameInProgress  = errors.New("game already in progress")
	ErrWrongPhase      = errors.New("command not valid in current phase")
	ErrNeedMorePlayers = errors.New("not enough players to start")
	ErrNotAllReady     = errors.New("not all players are ready")
	ErrEliminated      = errors.New("player is eliminated")
	ErrInvalidTarget   = errors.New("invalid target")
	ErrCardNotInHand   = errors.New("card not in hand")
	ErrNotChooser      = errors.New("caller is not the designated chooser")
)
