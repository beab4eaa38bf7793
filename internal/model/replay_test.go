package model

import (
	"testing"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

func TestReplayFrame_RoundTrip(t *testing.T) {
	f := ReplayFrame{
		ButtonState: constants.ButtonLeft1 | constants.ButtonSmoke,
		Time:        15321,
		X:           256.5,
		Y:           192.25,
	}

	w := packet.NewWriter()
	f.Encode(w)

	got, err := DecodeReplayFrame(packet.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeReplayFrame: %v", err)
	}
	if got != f {
		t.Fatalf("round-trip mismatch:\ngot  %+v\nwant %+v", got, f)
	}
}

func TestReplayFrame_LegacyByteFoldsIntoRight1(t *testing.T) {
	w := packet.NewWriter()
	w.WriteUint8(uint8(constants.ButtonLeft1))
	w.WriteUint8(1) // legacy taiko byte
	w.WriteFloat32(0)
	w.WriteFloat32(0)
	w.WriteInt32(100)

	got, err := DecodeReplayFrame(packet.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeReplayFrame: %v", err)
	}
	want := constants.ButtonLeft1 | constants.ButtonRight1
	if got.ButtonState != want {
		t.Fatalf("button state = %v, want %v", got.ButtonState, want)
	}
}

func TestScoreFrame_RoundTrip(t *testing.T) {
	f := ScoreFrame{
		Time:         60000,
		ID:           0,
		Count300:     150,
		Count100:     12,
		Count50:      3,
		CountGeki:    40,
		CountKatu:    8,
		CountMiss:    1,
		TotalScore:   1_234_567,
		MaxCombo:     215,
		CurrentCombo: 30,
		Perfect:      false,
		CurrentHP:    180,
		TagByte:      0,
	}

	w := packet.NewWriter()
	f.Encode(w)

	r := packet.NewReader(w.Bytes())
	got, err := DecodeScoreFrame(r)
	if err != nil {
		t.Fatalf("DecodeScoreFrame: %v", err)
	}
	if got != f {
		t.Fatalf("round-trip mismatch:\ngot  %+v\nwant %+v", got, f)
	}
	if !r.EOF() {
		t.Fatalf("decoder left %d bytes", r.Remaining())
	}
}

func TestScoreFrame_RoundTripScoreV2(t *testing.T) {
	f := ScoreFrame{
		Time:         1000,
		Count300:     10,
		TotalScore:   50000,
		ScoreV2:      true,
		ComboPortion: 123.5,
		BonusPortion: 42.0,
	}

	w := packet.NewWriter()
	f.Encode(w)

	got, err := DecodeScoreFrame(packet.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeScoreFrame: %v", err)
	}
	if got.ComboPortion != 123.5 || got.BonusPortion != 42.0 {
		t.Fatalf("v2 portions lost: %+v", got)
	}
}

func TestScoreFrame_TotalHits(t *testing.T) {
	f := ScoreFrame{Count300: 100, Count100: 20, Count50: 5, CountMiss: 2}
	if got := f.TotalHits(); got != 127 {
		t.Fatalf("TotalHits = %d, want 127", got)
	}
}
