package server

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/masquerade/internal/content"
	"github.com/lox/masquerade/internal/game"
	"github.com/lox/masquerade/internal/randutil"
	"github.com/lox/masquerade/internal/roomcode"
)

// ErrRoomNotFound is returned for commands addressed to a room code that
// does not exist (or was destroyed when its last player left).
var ErrRoomNotFound = errors.New("room not found")

// Snapshots maps player id to that player's redacted room view. Bots are
// never included; they act inside the game layer and have no connection.
type Snapshots map[string]*game.Snapshot

// RegistryConfig configures room creation behaviour.
type RegistryConfig struct {
	// Seed is the base for per-room rng seeds; zero means derive from the
	// wall clock.
	Seed int64

	// SalonTimeout bounds the gossip salon. Zero disables the timer and
	// leaves the phase entirely host-driven.
	SalonTimeout time.Duration

	// Clock drives the salon timer; nil means the real clock.
	Clock quartz.Clock
}

// Registry owns every live room and serialises access to each one. All
// room mutations flow through Handle, which applies a command under the
// owning room's lock and returns fresh per-player snapshots for
// broadcast.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*roomEntry

	pool   *content.Pool
	logger *log.Logger
	codes  *roomcode.Generator
	clock  quartz.Clock

	seed         int64
	seq          int64
	salonTimeout time.Duration

	// onUpdate is invoked for state changes that happen outside a client
	// command, currently only the salon timer firing.
	onUpdate func(roomID string, snaps Snapshots)
}

type roomEntry struct {
	mu         sync.Mutex
	room       *game.Room
	salonTimer *quartz.Timer
}

// NewRegistry creates an empty registry.
func NewRegistry(pool *content.Pool, cfg RegistryConfig, logger *log.Logger) *Registry {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	return &Registry{
		rooms:        make(map[string]*roomEntry),
		pool:         pool,
		logger:       logger.WithPrefix("registry"),
		codes:        roomcode.NewGenerator(nil),
		clock:        clock,
		seed:         seed,
		salonTimeout: cfg.SalonTimeout,
	}
}

// SetUpdateHandler registers the broadcast callback for timer-driven
// state changes. Must be called before any room can reach the salon.
func (g *Registry) SetUpdateHandler(fn func(roomID string, snaps Snapshots)) {
	g.onUpdate = fn
}

// CreateRoom allocates a fresh room with a unique code and joins the
// creator as host.
func (g *Registry) CreateRoom(hostID, name, avatar string) (string, Snapshots, error) {
	g.mu.Lock()
	var roomID string
	for {
		roomID = g.codes.Generate()
		if _, taken := g.rooms[roomID]; !taken {
			break
		}
	}

	g.seq++
	room := game.NewRoom(roomID, g.pool, randutil.ForRoom(g.seed, g.seq), g.logger)
	entry := &roomEntry{room: room}
	g.rooms[roomID] = entry
	g.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := room.Join(hostID, name, avatar); err != nil {
		return "", nil, err
	}

	g.logger.Info("room created", "room", roomID, "host", hostID)
	return roomID, g.snapshotsLocked(room), nil
}

// Handle applies a command to a room on behalf of a player. On success
// the returned snapshots reflect the post-command state for every human
// in the room.
func (g *Registry) Handle(roomID, callerID string, cmd Command) (Snapshots, error) {
	roomID = roomcode.Normalize(roomID)
	entry := g.lookup(roomID)
	if entry == nil {
		return nil, ErrRoomNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := cmd.Apply(entry.room, callerID); err != nil {
		return nil, err
	}

	g.manageSalonTimer(roomID, entry)

	if entry.room.Empty() {
		g.destroy(roomID)
		return Snapshots{}, nil
	}
	return g.snapshotsLocked(entry.room), nil
}

// Disconnect handles a dropped connection for a player, returning
// snapshots when the room changed.
func (g *Registry) Disconnect(roomID, playerID string) Snapshots {
	entry := g.lookup(roomID)
	if entry == nil {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.room.Disconnect(playerID)
	if entry.room.Empty() {
		g.destroy(roomID)
		return Snapshots{}
	}
	return g.snapshotsLocked(entry.room)
}

// RoomCount returns the number of live rooms.
func (g *Registry) RoomCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}

func (g *Registry) lookup(roomID string) *roomEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rooms[roomID]
}

func (g *Registry) destroy(roomID string) {
	g.mu.Lock()
	delete(g.rooms, roomID)
	g.mu.Unlock()
	g.logger.Info("room destroyed", "room", roomID)
}

// snapshotsLocked builds the per-player projections. Callers must hold
// the room entry lock.
func (g *Registry) snapshotsLocked(room *game.Room) Snapshots {
	snaps := make(Snapshots)
	for _, id := range room.PlayerIDs() {
		if room.Players[id].IsBot {
			continue
		}
		snaps[id] = room.SnapshotFor(id)
	}
	return snaps
}

// manageSalonTimer starts the salon countdown when the room enters the
// gossip salon and stops it on any other phase. The timer advances the
// phase as the host would.
func (g *Registry) manageSalonTimer(roomID string, entry *roomEntry) {
	if g.salonTimeout <= 0 {
		return
	}

	if entry.room.Phase != game.PhaseGossipSalon {
		if entry.salonTimer != nil {
			entry.salonTimer.Stop()
			entry.salonTimer = nil
		}
		return
	}

	if entry.salonTimer != nil {
		return
	}

	entry.salonTimer = g.clock.AfterFunc(g.salonTimeout, func() {
		g.salonExpired(roomID)
	})
}

func (g *Registry) salonExpired(roomID string) {
	entry := g.lookup(roomID)
	if entry == nil {
		return
	}

	entry.mu.Lock()
	entry.salonTimer = nil
	if entry.room.Phase != game.PhaseGossipSalon {
		entry.mu.Unlock()
		return
	}

	hostID := entry.room.HostID
	if err := entry.room.AdvancePhase(hostID); err != nil {
		g.logger.Warn("salon timer advance failed", "room", roomID, "error", err)
		entry.mu.Unlock()
		return
	}
	g.logger.Info("salon timer expired, phase advanced", "room", roomID, "phase", entry.room.Phase)
	snaps := g.snapshotsLocked(entry.room)
	entry.mu.Unlock()

	if g.onUpdate != nil {
		g.onUpdate(roomID, snaps)
	}
}
