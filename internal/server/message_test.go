package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMessageRoundTrip(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MessageTypeJoinRoom, JoinRoomData{
		RoomID:     "ABCDE",
		PlayerName: "Harlequin",
	})
	require.NoError(t, err)
	require.Equal(t, MessageTypeJoinRoom, msg.Type)
	require.False(t, msg.Timestamp.IsZero())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, MessageTypeJoinRoom, decoded.Type)

	var data JoinRoomData
	require.NoError(t, json.Unmarshal(decoded.Data, &data))
	require.Equal(t, "ABCDE", data.RoomID)
	require.Equal(t, "Harlequin", data.PlayerName)
}

func TestNewMessageRejectsUnmarshalable(t *testing.T) {
	t.Parallel()

	_, err := NewMessage(MessageTypeRoomState, make(chan int))
	require.Error(t, err)
}
