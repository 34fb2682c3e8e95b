package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants used on the client-server protocol
const (
	// Client to server messages
	MessageTypeJoinRoom                MessageType = "join_room"
	MessageTypeLeaveRoom               MessageType = "leave_room"
	MessageTypeAddBot                  MessageType = "add_bot"
	MessageTypeUpdatePlayer            MessageType = "update_player"
	MessageTypeSetGameMode             MessageType = "set_game_mode"
	MessageTypeSetRevealDiscussion     MessageType = "set_reveal_discussion"
	MessageTypeSetRevealElimination    MessageType = "set_reveal_elimination"
	MessageTypeAdvancePhase            MessageType = "advance_phase"
	MessageTypeShareCard               MessageType = "share_card"
	MessageTypeVote                    MessageType = "vote"
	MessageTypeChooseForcedElimination MessageType = "choose_forced_elimination"
	MessageTypeSubmitAllianceGuess     MessageType = "submit_alliance_guess"
	MessageTypeKickPlayer              MessageType = "kick_player"
	MessageTypeEndGame                 MessageType = "end_game"

	// Server to client messages
	MessageTypeRoomJoined MessageType = "room_joined"
	MessageTypeRoomLeft   MessageType = "room_left"
	MessageTypeRoomState  MessageType = "room_state"
	MessageTypeError      MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
