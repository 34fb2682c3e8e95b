package server

import "github.com/lox/masquerade/internal/game"

// Command is a single room mutation. Commands are applied by the
// registry under the owning room's lock, so implementations never need
// their own synchronisation.
type Command interface {
	Apply(r *game.Room, callerID string) error
}

type JoinRoomCommand struct {
	Name   string
	Avatar string
}

func (c JoinRoomCommand) Apply(r *game.Room, callerID string) error {
	return r.Join(callerID, c.Name, c.Avatar)
}

type LeaveRoomCommand struct{}

func (c LeaveRoomCommand) Apply(r *game.Room, callerID string) error {
	return r.Leave(callerID)
}

type AddBotCommand struct{}

func (c AddBotCommand) Apply(r *game.Room, callerID string) error {
	return r.AddBot(callerID)
}

type UpdatePlayerCommand struct {
	Name   string
	Avatar string
	Ready  bool
}

func (c UpdatePlayerCommand) Apply(r *game.Room, callerID string) error {
	return r.UpdatePlayer(callerID, c.Name, c.Avatar, c.Ready)
}

type SetGameModeCommand struct {
	Mode game.GameMode
}

func (c SetGameModeCommand) Apply(r *game.Room, callerID string) error {
	return r.SetGameMode(callerID, c.Mode)
}

type SetRevealDiscussionCommand struct {
	Enabled bool
}

func (c SetRevealDiscussionCommand) Apply(r *game.Room, callerID string) error {
	return r.SetRevealMotifDuringDiscussion(callerID, c.Enabled)
}

type SetRevealEliminationCommand struct {
	Enabled bool
}

func (c SetRevealEliminationCommand) Apply(r *game.Room, callerID string) error {
	return r.SetRevealMotifDuringElimination(callerID, c.Enabled)
}

type AdvancePhaseCommand struct{}

func (c AdvancePhaseCommand) Apply(r *game.Room, callerID string) error {
	return r.AdvancePhase(callerID)
}

type ShareCardCommand struct {
	CardID string
}

func (c ShareCardCommand) Apply(r *game.Room, callerID string) error {
	return r.ShareCard(callerID, c.CardID)
}

type VoteCommand struct {
	TargetID string
}

func (c VoteCommand) Apply(r *game.Room, callerID string) error {
	return r.Vote(callerID, c.TargetID)
}

type ChooseForcedEliminationCommand struct {
	TargetID string
}

func (c ChooseForcedEliminationCommand) Apply(r *game.Room, callerID string) error {
	return r.ChooseForcedElimination(callerID, c.TargetID)
}

type SubmitAllianceGuessCommand struct {
	Guess game.Alliance
}

func (c SubmitAllianceGuessCommand) Apply(r *game.Room, callerID string) error {
	return r.SubmitAllianceGuess(callerID, c.Guess)
}

type KickPlayerCommand struct {
	TargetID string
}

func (c KickPlayerCommand) Apply(r *game.Room, callerID string) error {
	return r.KickPlayer(callerID, c.TargetID)
}

type EndGameCommand struct{}

func (c EndGameCommand) Apply(r *game.Room, callerID string) error {
	return r.EndGame(callerID)
}
