package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a client. Each
// connection carries a server-assigned player id for its whole lifetime;
// the id doubles as the player's identity inside any room they join.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	playerID  string
	roomID    string
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper with a fresh player id
func NewConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:     conn,
		send:     make(chan *Message, 256),
		playerID: newPlayerID(),
		server:   server,
		logger:   logger.WithPrefix("conn"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func newPlayerID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to generate player id: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// PlayerID returns the server-assigned player id
func (c *Connection) PlayerID() string {
	return c.playerID
}

// RoomID returns the room this connection has joined, if any
func (c *Connection) RoomID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

func (c *Connection) setRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.playerID)

	switch msg.Type {
	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeLeaveRoom:
		var data LeaveRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse leave room data")
			return
		}
		c.handleLeaveRoom(data)

	case MessageTypeAddBot:
		var data AddBotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse add bot data")
			return
		}
		c.dispatch(data.RoomID, AddBotCommand{})

	case MessageTypeUpdatePlayer:
		var data UpdatePlayerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse update player data")
			return
		}
		c.dispatch(data.RoomID, UpdatePlayerCommand{
			Name:   data.PlayerName,
			Avatar: data.Avatar,
			Ready:  data.Ready,
		})

	case MessageTypeSetGameMode:
		var data SetGameModeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse set game mode data")
			return
		}
		c.dispatch(data.RoomID, SetGameModeCommand{Mode: data.GameMode})

	case MessageTypeSetRevealDiscussion:
		var data SetRevealData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse reveal setting data")
			return
		}
		c.dispatch(data.RoomID, SetRevealDiscussionCommand{Enabled: data.Enabled})

	case MessageTypeSetRevealElimination:
		var data SetRevealData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse reveal setting data")
			return
		}
		c.dispatch(data.RoomID, SetRevealEliminationCommand{Enabled: data.Enabled})

	case MessageTypeAdvancePhase:
		var data AdvancePhaseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse advance phase data")
			return
		}
		c.dispatch(data.RoomID, AdvancePhaseCommand{})

	case MessageTypeShareCard:
		var data ShareCardData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse share card data")
			return
		}
		c.dispatch(data.RoomID, ShareCardCommand{CardID: data.CardID})

	case MessageTypeVote:
		var data VoteData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse vote data")
			return
		}
		c.dispatch(data.RoomID, VoteCommand{TargetID: data.TargetID})

	case MessageTypeChooseForcedElimination:
		var data ChooseForcedEliminationData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse forced elimination data")
			return
		}
		c.dispatch(data.RoomID, ChooseForcedEliminationCommand{TargetID: data.TargetID})

	case MessageTypeSubmitAllianceGuess:
		var data SubmitAllianceGuessData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse alliance guess data")
			return
		}
		c.dispatch(data.RoomID, SubmitAllianceGuessCommand{Guess: data.Guess})

	case MessageTypeKickPlayer:
		var data KickPlayerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse kick player data")
			return
		}
		c.dispatch(data.RoomID, KickPlayerCommand{TargetID: data.TargetID})

	case MessageTypeEndGame:
		var data EndGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse end game data")
			return
		}
		c.dispatch(data.RoomID, EndGameCommand{})

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// dispatch runs a command against the registry and broadcasts the
// resulting snapshots on success.
func (c *Connection) dispatch(roomID string, cmd Command) {
	snaps, err := c.server.registry.Handle(roomID, c.playerID, cmd)
	if err != nil {
		c.sendError("command_failed", err.Error())
		return
	}
	c.server.BroadcastSnapshots(roomID, snaps)
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	c.logger.Info("Join room request", "roomId", data.RoomID, "player", c.playerID, "name", data.PlayerName)

	if data.PlayerName == "" {
		c.sendError("invalid_join", "Player name required")
		return
	}

	var (
		roomID string
		snaps  Snapshots
		err    error
	)
	if data.RoomID == "" {
		roomID, snaps, err = c.server.registry.CreateRoom(c.playerID, data.PlayerName, data.Avatar)
	} else {
		roomID = data.RoomID
		snaps, err = c.server.registry.Handle(roomID, c.playerID, JoinRoomCommand{
			Name:   data.PlayerName,
			Avatar: data.Avatar,
		})
	}
	if err != nil {
		c.sendError("join_failed", err.Error())
		return
	}

	c.setRoom(roomID)

	response, _ := NewMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID:   roomID,
		PlayerID: c.playerID,
	})
	_ = c.SendMessage(response)

	c.server.BroadcastSnapshots(roomID, snaps)
}

func (c *Connection) handleLeaveRoom(data LeaveRoomData) {
	c.logger.Info("Leave room request", "roomId", data.RoomID, "player", c.playerID)

	snaps, err := c.server.registry.Handle(data.RoomID, c.playerID, LeaveRoomCommand{})
	if err != nil {
		c.sendError("leave_failed", err.Error())
		return
	}

	c.setRoom("")

	response, _ := NewMessage(MessageTypeRoomLeft, RoomLeftData{RoomID: data.RoomID})
	_ = c.SendMessage(response)

	c.server.BroadcastSnapshots(data.RoomID, snaps)
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}
