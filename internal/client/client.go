// Package client implements the terminal client: a thin WebSocket layer
// that speaks the room protocol, and a Bubble Tea interface on top.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/masquerade/internal/game"
	"github.com/lox/masquerade/internal/server"
)

// Client is a WebSocket connection to a masquerade server. Incoming
// messages are surfaced on Messages; the send side is safe for
// concurrent use.
type Client struct {
	conn     *websocket.Conn
	logger   *log.Logger
	incoming chan *server.Message

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial connects to the server's /ws endpoint.
func Dial(url string, logger *log.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	return &Client{
		conn:     conn,
		logger:   logger.WithPrefix("client"),
		incoming: make(chan *server.Message, 64),
	}, nil
}

// Run pumps incoming messages until the context is cancelled or the
// connection drops. Messages is closed on return.
func (c *Client) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(c.incoming)
		for {
			var msg server.Message
			if err := c.conn.ReadJSON(&msg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("read: %w", err)
			}
			select {
			case c.incoming <- &msg:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		return c.Close()
	})

	return g.Wait()
}

// Messages returns the channel of server messages.
func (c *Client) Messages() <-chan *server.Message {
	return c.incoming
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}

func (c *Client) send(t server.MessageType, data interface{}) error {
	msg, err := server.NewMessage(t, data)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.logger.Debug("sending", "type", t)
	return c.conn.WriteJSON(msg)
}

// JoinRoom joins an existing room, or creates one when roomID is empty.
func (c *Client) JoinRoom(roomID, name, avatar string) error {
	return c.send(server.MessageTypeJoinRoom, server.JoinRoomData{
		RoomID:     roomID,
		PlayerName: name,
		Avatar:     avatar,
	})
}

func (c *Client) LeaveRoom(roomID string) error {
	return c.send(server.MessageTypeLeaveRoom, server.LeaveRoomData{RoomID: roomID})
}

func (c *Client) AddBot(roomID string) error {
	return c.send(server.MessageTypeAddBot, server.AddBotData{RoomID: roomID})
}

func (c *Client) UpdatePlayer(roomID, name, avatar string, ready bool) error {
	return c.send(server.MessageTypeUpdatePlayer, server.UpdatePlayerData{
		RoomID:     roomID,
		PlayerName: name,
		Avatar:     avatar,
		Ready:      ready,
	})
}

func (c *Client) SetGameMode(roomID string, mode game.GameMode) error {
	return c.send(server.MessageTypeSetGameMode, server.SetGameModeData{
		RoomID:   roomID,
		GameMode: mode,
	})
}

func (c *Client) SetRevealDiscussion(roomID string, enabled bool) error {
	return c.send(server.MessageTypeSetRevealDiscussion, server.SetRevealData{
		RoomID:  roomID,
		Enabled: enabled,
	})
}

func (c *Client) SetRevealElimination(roomID string, enabled bool) error {
	return c.send(server.MessageTypeSetRevealElimination, server.SetRevealData{
		RoomID:  roomID,
		Enabled: enabled,
	})
}

func (c *Client) AdvancePhase(roomID string) error {
	return c.send(server.MessageTypeAdvancePhase, server.AdvancePhaseData{RoomID: roomID})
}

func (c *Client) ShareCard(roomID, cardID string) error {
	return c.send(server.MessageTypeShareCard, server.ShareCardData{
		RoomID: roomID,
		CardID: cardID,
	})
}

func (c *Client) Vote(roomID, targetID string) error {
	return c.send(server.MessageTypeVote, server.VoteData{
		RoomID:   roomID,
		TargetID: targetID,
	})
}

func (c *Client) ChooseForcedElimination(roomID, targetID string) error {
	return c.send(server.MessageTypeChooseForcedElimination, server.ChooseForcedEliminationData{
		RoomID:   roomID,
		TargetID: targetID,
	})
}

func (c *Client) SubmitAllianceGuess(roomID string, guess game.Alliance) error {
	return c.send(server.MessageTypeSubmitAllianceGuess, server.SubmitAllianceGuessData{
		RoomID: roomID,
		Guess:  guess,
	})
}

func (c *Client) KickPlayer(roomID, targetID string) error {
	return c.send(server.MessageTypeKickPlayer, server.KickPlayerData{
		RoomID:   roomID,
		TargetID: targetID,
	})
}

func (c *Client) EndGame(roomID string) error {
	return c.send(server.MessageTypeEndGame, server.EndGameData{RoomID: roomID})
}
