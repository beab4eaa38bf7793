package model

import (
	"fmt"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

// SlotCount is fixed by the protocol.
const SlotCount = 16

// Slot is one position inside a multiplayer room.
type Slot struct {
	PlayerID int32
	Status   constants.SlotStatus
	Team     constants.SlotTeam
	Mods     constants.Mods
}

// HasPlayer reports whether the slot status implies an occupant.
func (s *Slot) HasPlayer() bool {
	return s.Status&constants.SlotHasPlayer != 0
}

// IsOpen reports whether the slot can be taken.
func (s *Slot) IsOpen() bool {
	return s.Status == constants.SlotOpen
}

// IsReady reports whether the occupant pressed ready.
func (s *Slot) IsReady() bool {
	return s.Status == constants.SlotReady
}

// Match is the state of one multiplayer room.
type Match struct {
	ID         uint16
	InProgress bool
	Type       constants.MatchType
	Mods       constants.Mods
	Name       string
	Password   string

	BeatmapText     string
	BeatmapID       int32
	BeatmapChecksum string

	Slots  [SlotCount]Slot
	HostID int32

	Mode        constants.Mode
	ScoringType constants.ScoringType
	TeamType    constants.TeamType
	Freemod     bool
	Seed        int32
}

// NewMatch creates an empty room with every slot locked.
func NewMatch(name, password string, hostID int32) *Match {
	m := &Match{
		Name:      name,
		Password:  password,
		HostID:    hostID,
		BeatmapID: -1,
	}
	for i := range m.Slots {
		m.Slots[i] = Slot{PlayerID: -1, Status: constants.SlotLocked}
	}
	return m
}

// Encode writes the match in wire order. Per-slot mods are only present
// when the freemod flag is set.
func (m *Match) Encode(w *packet.Writer) {
	w.WriteUint16(m.ID)
	w.WriteBool(m.InProgress)
	w.WriteUint8(uint8(m.Type))
	w.WriteUint32(uint32(m.Mods))
	w.WriteString(m.Name)
	w.WriteString(m.Password)
	w.WriteString(m.BeatmapText)
	w.WriteInt32(m.BeatmapID)
	w.WriteString(m.BeatmapChecksum)

	for i := range m.Slots {
		w.WriteUint8(uint8(m.Slots[i].Status))
	}
	for i := range m.Slots {
		w.WriteUint8(uint8(m.Slots[i].Team))
	}
	for i := range m.Slots {
		if m.Slots[i].HasPlayer() {
			w.WriteInt32(m.Slots[i].PlayerID)
		}
	}

	w.WriteInt32(m.HostID)
	w.WriteUint8(uint8(m.Mode))
	w.WriteUint8(uint8(m.ScoringType))
	w.WriteUint8(uint8(m.TeamType))
	w.WriteBool(m.Freemod)
	if m.Freemod {
		for i := range m.Slots {
			w.WriteUint32(uint32(m.Slots[i].Mods))
		}
	}
	w.WriteInt32(m.Seed)
}

// DecodeMatch reads a match in wire order.
func DecodeMatch(r *packet.Reader) (*Match, error) {
	m := &Match{}

	id, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("reading match id: %w", err)
	}
	m.ID = id

	if m.InProgress, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading in-progress flag: %w", err)
	}

	matchType, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading match type: %w", err)
	}
	m.Type = constants.MatchType(matchType)

	mods, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading mods: %w", err)
	}
	m.Mods = constants.Mods(mods)

	if m.Name, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading name: %w", err)
	}
	if m.Password, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	if m.BeatmapText, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading beatmap text: %w", err)
	}
	if m.BeatmapID, err = r.ReadInt32(); err != nil {
		return nil, fmt.Errorf("reading beatmap id: %w", err)
	}
	if m.BeatmapChecksum, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading beatmap checksum: %w", err)
	}

	for i := range m.Slots {
		status, err := r.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("reading slot %d status: %w", i, err)
		}
		m.Slots[i].Status = constants.SlotStatus(status)
		m.Slots[i].PlayerID = -1
	}
	for i := range m.Slots {
		team, err := r.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("reading slot %d team: %w", i, err)
		}
		m.Slots[i].Team = constants.SlotTeam(team)
	}
	for i := range m.Slots {
		if !m.Slots[i].HasPlayer() {
			continue
		}
		if m.Slots[i].PlayerID, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("reading slot %d player: %w", i, err)
		}
	}

	if m.HostID, err = r.ReadInt32(); err != nil {
		return nil, fmt.Errorf("reading host id: %w", err)
	}

	mode, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading mode: %w", err)
	}
	m.Mode = constants.ClampMode(mode)

	scoring, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading scoring type: %w", err)
	}
	m.ScoringType = constants.ScoringType(scoring)

	teamType, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading team type: %w", err)
	}
	m.TeamType = constants.TeamType(teamType)

	if m.Freemod, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading freemod flag: %w", err)
	}
	if m.Freemod {
		for i := range m.Slots {
			mods, err := r.ReadUint32()
			if err != nil {
				return nil, fmt.Errorf("reading slot %d mods: %w", i, err)
			}
			m.Slots[i].Mods = constants.Mods(mods)
		}
	}

	if m.Seed, err = r.ReadInt32(); err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}
	return m, nil
}
