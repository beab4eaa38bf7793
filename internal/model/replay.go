package model

import (
	"fmt"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

// ReplayFrame is one input sample inside a spectate frame bundle.
type ReplayFrame struct {
	ButtonState constants.ButtonState
	Time        int32
	X           float32
	Y           float32
}

// Encode writes the frame in wire order. The second byte is the legacy
// button byte, superseded by the ButtonState flags and always written zero.
func (f *ReplayFrame) Encode(w *packet.Writer) {
	w.WriteUint8(uint8(f.ButtonState))
	w.WriteUint8(0)
	w.WriteFloat32(f.X)
	w.WriteFloat32(f.Y)
	w.WriteInt32(f.Time)
}

// DecodeReplayFrame reads one frame. A non-zero legacy byte folds into the
// Right1 flag for old replay compatibility.
func DecodeReplayFrame(r *packet.Reader) (ReplayFrame, error) {
	var f ReplayFrame

	buttons, err := r.ReadUint8()
	if err != nil {
		return f, fmt.Errorf("reading button state: %w", err)
	}
	f.ButtonState = constants.ButtonState(buttons)

	legacy, err := r.ReadUint8()
	if err != nil {
		return f, fmt.Errorf("reading legacy byte: %w", err)
	}
	if legacy > 0 {
		f.ButtonState |= constants.ButtonRight1
	}

	if f.X, err = r.ReadFloat32(); err != nil {
		return f, fmt.Errorf("reading x: %w", err)
	}
	if f.Y, err = r.ReadFloat32(); err != nil {
		return f, fmt.Errorf("reading y: %w", err)
	}
	if f.Time, err = r.ReadInt32(); err != nil {
		return f, fmt.Errorf("reading time: %w", err)
	}
	return f, nil
}

// ScoreFrame is the live score state attached to a spectate frame bundle.
type ScoreFrame struct {
	Time         int32
	ID           uint8
	Count300     uint16
	Count100     uint16
	Count50      uint16
	CountGeki    uint16
	CountKatu    uint16
	CountMiss    uint16
	TotalScore   int32
	MaxCombo     uint16
	CurrentCombo uint16
	Perfect      bool
	CurrentHP    uint8
	TagByte      uint8

	ScoreV2      bool
	ComboPortion float32
	BonusPortion float32
}

// TotalHits returns the number of judged objects.
func (f *ScoreFrame) TotalHits() int {
	return int(f.Count50) + int(f.Count100) + int(f.Count300) + int(f.CountMiss)
}

// Encode writes the score frame in wire order. The two float portions are
// only present when the ScoreV2 flag is set.
func (f *ScoreFrame) Encode(w *packet.Writer) {
	w.WriteInt32(f.Time)
	w.WriteUint8(f.ID)
	w.WriteUint16(f.Count300)
	w.WriteUint16(f.Count100)
	w.WriteUint16(f.Count50)
	w.WriteUint16(f.CountGeki)
	w.WriteUint16(f.CountKatu)
	w.WriteUint16(f.CountMiss)
	w.WriteInt32(f.TotalScore)
	w.WriteUint16(f.MaxCombo)
	w.WriteUint16(f.CurrentCombo)
	w.WriteBool(f.Perfect)
	w.WriteUint8(f.CurrentHP)
	w.WriteUint8(f.TagByte)
	w.WriteBool(f.ScoreV2)
	if f.ScoreV2 {
		w.WriteFloat32(f.ComboPortion)
		w.WriteFloat32(f.BonusPortion)
	}
}

// DecodeScoreFrame reads one score frame.
func DecodeScoreFrame(r *packet.Reader) (ScoreFrame, error) {
	var f ScoreFrame
	var err error

	if f.Time, err = r.ReadInt32(); err != nil {
		return f, fmt.Errorf("reading time: %w", err)
	}
	if f.ID, err = r.ReadUint8(); err != nil {
		return f, fmt.Errorf("reading id: %w", err)
	}
	if f.Count300, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading count300: %w", err)
	}
	if f.Count100, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading count100: %w", err)
	}
	if f.Count50, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading count50: %w", err)
	}
	if f.CountGeki, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading countGeki: %w", err)
	}
	if f.CountKatu, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading countKatu: %w", err)
	}
	if f.CountMiss, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading countMiss: %w", err)
	}
	if f.TotalScore, err = r.ReadInt32(); err != nil {
		return f, fmt.Errorf("reading total score: %w", err)
	}
	if f.MaxCombo, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading max combo: %w", err)
	}
	if f.CurrentCombo, err = r.ReadUint16(); err != nil {
		return f, fmt.Errorf("reading current combo: %w", err)
	}
	if f.Perfect, err = r.ReadBool(); err != nil {
		return f, fmt.Errorf("reading perfect: %w", err)
	}
	if f.CurrentHP, err = r.ReadUint8(); err != nil {
		return f, fmt.Errorf("reading current hp: %w", err)
	}
	if f.TagByte, err = r.ReadUint8(); err != nil {
		return f, fmt.Errorf("reading tag byte: %w", err)
	}
	if f.ScoreV2, err = r.ReadBool(); err != nil {
		return f, fmt.Errorf("reading scoreV2 flag: %w", err)
	}
	if f.ScoreV2 {
		if f.ComboPortion, err = r.ReadFloat32(); err != nil {
			return f, fmt.Errorf("reading combo portion: %w", err)
		}
		if f.BonusPortion, err = r.ReadFloat32(); err != nil {
			return f, fmt.Errorf("reading bonus portion: %w", err)
		}
	}
	return f, nil
}
