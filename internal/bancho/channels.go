package bancho

import (
	"sync"

	"github.com/Lekuruu/gosu/internal/model"
)

// Channels manages every chat channel advertised by the server.
// Thread-safe for concurrent access; iteration works on snapshots.
type Channels struct {
	mu       sync.RWMutex
	channels map[string]*model.Channel
}

// NewChannels creates an empty collection.
func NewChannels() *Channels {
	return &Channels{channels: make(map[string]*model.Channel, 16)}
}

// Add inserts a channel, replacing any previous entry with the same name.
func (cs *Channels) Add(c *model.Channel) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.channels[c.Name] = c
}

// Remove deletes a channel by name.
func (cs *Channels) Remove(c *model.Channel) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.channels, c.Name)
}

// Get returns the channel with the given name, or nil.
func (cs *Channels) Get(name string) *model.Channel {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.channels[name]
}

// Len returns the number of known channels.
func (cs *Channels) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.channels)
}

// Snapshot returns a copy of the current members.
func (cs *Channels) Snapshot() []*model.Channel {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]*model.Channel, 0, len(cs.channels))
	for _, c := range cs.channels {
		out = append(out, c)
	}
	return out
}

// Joined returns every channel the client is currently a member of.
func (cs *Channels) Joined() []*model.Channel {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var out []*model.Channel
	for _, c := range cs.channels {
		if c.Joined {
			out = append(out, c)
		}
	}
	return out
}
