package bancho

import (
	"sync"

	"github.com/Lekuruu/gosu/internal/model"
)

// Players manages every online player known to the session.
// Thread-safe for concurrent access; iteration works on snapshots.
type Players struct {
	mu      sync.RWMutex
	players map[int32]*model.Player
}

// NewPlayers creates an empty collection.
func NewPlayers() *Players {
	return &Players{players: make(map[int32]*model.Player, 256)}
}

// Add inserts a player, replacing any previous entry with the same id.
func (ps *Players) Add(p *model.Player) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.players[p.ID] = p
}

// Remove deletes a player by id.
func (ps *Players) Remove(p *model.Player) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.players, p.ID)
}

// ByID returns the player with the given id, or nil.
func (ps *Players) ByID(id int32) *model.Player {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.players[id]
}

// ByName returns the first player with the given display name, or nil.
// Players whose presence has not arrived yet have an empty name and never
// match.
func (ps *Players) ByName(name string) *model.Player {
	if name == "" {
		return nil
	}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	for _, p := range ps.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Contains reports whether a player with the given id is known.
func (ps *Players) Contains(id int32) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	_, ok := ps.players[id]
	return ok
}

// Len returns the number of known players.
func (ps *Players) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.players)
}

// Snapshot returns a copy of the current members.
func (ps *Players) Snapshot() []*model.Player {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	out := make([]*model.Player, 0, len(ps.players))
	for _, p := range ps.players {
		out = append(out, p)
	}
	return out
}

// IDs returns the ids of every known player.
func (ps *Players) IDs() []int32 {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	out := make([]int32, 0, len(ps.players))
	for id := range ps.players {
		out = append(out, id)
	}
	return out
}

// PendingPresence returns the ids of players that were referenced by the
// server but whose presence packet has not arrived yet.
func (ps *Players) PendingPresence() []int32 {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	var out []int32
	for id, p := range ps.players {
		if !p.HasPresence() {
			out = append(out, id)
		}
	}
	return out
}
