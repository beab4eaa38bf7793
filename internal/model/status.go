package model

import (
	"fmt"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

// Status is the frequently-changing activity block attached to a player.
type Status struct {
	Action    constants.StatusAction
	Text      string
	Checksum  string
	Mods      constants.Mods
	Mode      constants.Mode
	BeatmapID int32
}

// Reset returns the status to its idle defaults.
func (s *Status) Reset() {
	*s = Status{}
}

// Encode writes the status block in wire order.
func (s *Status) Encode(w *packet.Writer) {
	w.WriteUint8(uint8(s.Action))
	w.WriteString(s.Text)
	w.WriteString(s.Checksum)
	w.WriteUint32(uint32(s.Mods))
	w.WriteUint8(uint8(s.Mode))
	w.WriteInt32(s.BeatmapID)
}

// DecodeStatus reads a status block in wire order.
func DecodeStatus(r *packet.Reader) (Status, error) {
	var s Status

	action, err := r.ReadUint8()
	if err != nil {
		return s, fmt.Errorf("reading action: %w", err)
	}
	s.Action = constants.StatusAction(action)

	if s.Text, err = r.ReadString(); err != nil {
		return s, fmt.Errorf("reading text: %w", err)
	}
	if s.Checksum, err = r.ReadString(); err != nil {
		return s, fmt.Errorf("reading checksum: %w", err)
	}

	mods, err := r.ReadUint32()
	if err != nil {
		return s, fmt.Errorf("reading mods: %w", err)
	}
	s.Mods = constants.Mods(mods)

	mode, err := r.ReadUint8()
	if err != nil {
		return s, fmt.Errorf("reading mode: %w", err)
	}
	s.Mode = constants.ClampMode(mode)

	if s.BeatmapID, err = r.ReadInt32(); err != nil {
		return s, fmt.Errorf("reading beatmap id: %w", err)
	}
	return s, nil
}

func (s Status) String() string {
	if s.Text == "" {
		return s.Action.String()
	}
	return fmt.Sprintf("%s - %s", s.Action, s.Text)
}
