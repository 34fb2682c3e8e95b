package server

import (
	"encoding/json"
	"time"

	"github.com/lox/masquerade/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type JoinRoomData struct {
	// RoomID is empty when the client wants a fresh room created.
	RoomID     string `json:"roomId,omitempty"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar,omitempty"`
}

type LeaveRoomData struct {
	RoomID string `json:"roomId"`
}

type AddBotData struct {
	RoomID string `json:"roomId"`
}

type UpdatePlayerData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar"`
	Ready      bool   `json:"ready"`
}

type SetGameModeData struct {
	RoomID   string        `json:"roomId"`
	GameMode game.GameMode `json:"gameMode"`
}

type SetRevealData struct {
	RoomID  string `json:"roomId"`
	Enabled bool   `json:"enabled"`
}

type AdvancePhaseData struct {
	RoomID string `json:"roomId"`
}

type ShareCardData struct {
	RoomID string `json:"roomId"`
	CardID string `json:"cardId"`
}

type VoteData struct {
	RoomID   string `json:"roomId"`
	TargetID string `json:"targetId"`
}

type ChooseForcedEliminationData struct {
	RoomID   string `json:"roomId"`
	TargetID string `json:"targetId"`
}

type SubmitAllianceGuessData struct {
	RoomID string        `json:"roomId"`
	Guess  game.Alliance `json:"guess"`
}

type KickPlayerData struct {
	RoomID   string `json:"roomId"`
	TargetID string `json:"targetId"`
}

type EndGameData struct {
	RoomID string `json:"roomId"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomJoinedData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type RoomLeftData struct {
	RoomID string `json:"roomId"`
}

// RoomStateData wraps the per-player projection; the snapshot is already
// redacted for its recipient by the game layer.
type RoomStateData struct {
	State *game.Snapshot `json:"state"`
}
