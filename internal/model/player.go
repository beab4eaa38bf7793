package model

import (
	"fmt"
	"sync"

	"github.com/Lekuruu/gosu/internal/constants"
)

// Player is one online user known to the session. Identity is by id only:
// an empty name means the presence packet has not arrived yet.
//
// Fields are written by the driver goroutine inside built-in handlers.
// The spectator set has its own lock because threaded user callbacks may
// inspect it concurrently.
type Player struct {
	ID   int32
	Name string

	Timezone    int8
	CountryCode uint8
	Mode        constants.Mode
	Longitude   float32
	Latitude    float32

	Status     Status
	LastStatus Status

	RankedScore int64
	TotalScore  int64
	Accuracy    float32
	Playcount   int32
	Rank        int32
	Performance int16

	Privileges constants.Privileges

	CantSpectate bool
	Silenced     bool
	DmsBlocked   bool

	Spectators *PlayerSet
}

// NewPlayer creates a player known only by id; the name arrives with the
// presence packet.
func NewPlayer(id int32, name string) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		Accuracy:   100.0,
		Spectators: NewPlayerSet(),
	}
}

// HasPresence reports whether a presence packet was received for this player.
func (p *Player) HasPresence() bool {
	return p.Name != ""
}

func (p *Player) String() string {
	return fmt.Sprintf("<Player %q (%d)>", p.Name, p.ID)
}

// PlayerSet is a small lock-protected set of players keyed by id.
// Iteration is defined against a snapshot to tolerate concurrent mutation.
type PlayerSet struct {
	mu      sync.RWMutex
	players map[int32]*Player
}

// NewPlayerSet creates an empty set.
func NewPlayerSet() *PlayerSet {
	return &PlayerSet{players: make(map[int32]*Player)}
}

// Add inserts the player, replacing any entry with the same id.
func (s *PlayerSet) Add(p *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

// Remove deletes the player by id. Removing an absent player is a no-op.
func (s *PlayerSet) Remove(p *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, p.ID)
}

// Contains reports whether a player with the same id is present.
func (s *PlayerSet) Contains(p *Player) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.players[p.ID]
	return ok
}

// Len returns the number of players in the set.
func (s *PlayerSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// Snapshot returns a copy of the current members.
func (s *PlayerSet) Snapshot() []*Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	return out
}
