package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/lox/masquerade/cmd/masquerade/shared"
	"github.com/lox/masquerade/internal/client"
)

// ClientCmd contains terminal client configuration
type ClientCmd struct {
	Server  string `kong:"short='s',default='ws://localhost:8080/ws',help='Server WebSocket URL'"`
	Name    string `kong:"short='n',help='Player name'"`
	Avatar  string `kong:"help='Preferred avatar'"`
	Room    string `kong:"short='r',help='Room code to join; omit to create a new room'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
	LogFile string `kong:"default='masquerade-client.log',help='Log file path (the TUI owns the terminal)'"`
}

func (c *ClientCmd) Run() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		fmt.Print("Enter your name for the ball: ")
		var input string
		_, _ = fmt.Scanln(&input)
		name = strings.TrimSpace(input)
		if name == "" {
			return fmt.Errorf("player name is required")
		}
	}

	logger, closer, err := shared.SetupFileLogger(c.LogFile, c.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ws, err := client.Dial(c.Server, logger)
	if err != nil {
		return err
	}

	model := client.NewModel(ws, name, c.Avatar, c.Room, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ws.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})

	return g.Wait()
}
