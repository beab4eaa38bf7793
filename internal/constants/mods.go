package constants

import "strings"

// Mods is the 31-bit modifier flag set.
type Mods uint32

const (
	NoMod       Mods = 0
	NoFail      Mods = 1 << 0
	Easy        Mods = 1 << 1
	TouchDevice Mods = 1 << 2
	Hidden      Mods = 1 << 3
	HardRock    Mods = 1 << 4
	SuddenDeath Mods = 1 << 5
	DoubleTime  Mods = 1 << 6
	Relax       Mods = 1 << 7
	HalfTime    Mods = 1 << 8
	Nightcore   Mods = 1 << 9
	Flashlight  Mods = 1 << 10
	Autoplay    Mods = 1 << 11
	SpunOut     Mods = 1 << 12
	Autopilot   Mods = 1 << 13
	Perfect     Mods = 1 << 14
	Key4        Mods = 1 << 15
	Key5        Mods = 1 << 16
	Key6        Mods = 1 << 17
	Key7        Mods = 1 << 18
	Key8        Mods = 1 << 19
	FadeIn      Mods = 1 << 20
	Random      Mods = 1 << 21
	Cinema      Mods = 1 << 22
	Target      Mods = 1 << 23
	Key9        Mods = 1 << 24
	KeyCoop     Mods = 1 << 25
	Key1        Mods = 1 << 26
	Key3        Mods = 1 << 27
	Key2        Mods = 1 << 28
	ScoreV2     Mods = 1 << 29
	LastMod     Mods = 1 << 30

	// Composite aliases, fixed by the stable client.
	KeyMod            = Key1 | Key2 | Key3 | Key4 | Key5 | Key6 | Key7 | Key8 | Key9 | KeyCoop
	FreeModAllowed    = NoFail | Easy | Hidden | HardRock | SuddenDeath | Flashlight | FadeIn | Relax | Autopilot | SpunOut | KeyMod
	ScoreIncreaseMods = Hidden | HardRock | DoubleTime | Flashlight | FadeIn
)

// modAcronyms is the canonical acronym table, in flag-bit order.
var modAcronyms = []struct {
	mod     Mods
	acronym string
}{
	{NoFail, "NF"},
	{Easy, "EZ"},
	{TouchDevice, "TD"},
	{Hidden, "HD"},
	{HardRock, "HR"},
	{SuddenDeath, "SD"},
	{DoubleTime, "DT"},
	{Relax, "RX"},
	{HalfTime, "HT"},
	{Nightcore, "NC"},
	{Flashlight, "FL"},
	{Autoplay, "AT"},
	{SpunOut, "SO"},
	{Autopilot, "AP"},
	{Perfect, "PF"},
	{Key4, "K4"},
	{Key5, "K5"},
	{Key6, "K6"},
	{Key7, "K7"},
	{Key8, "K8"},
	{FadeIn, "FI"},
	{Random, "RD"},
	{Cinema, "CN"},
	{Target, "TP"},
	{Key9, "K9"},
	{KeyCoop, "CO"},
	{Key1, "K1"},
	{Key3, "K3"},
	{Key2, "K2"},
	{ScoreV2, "V2"},
}

// Has reports whether every bit of mod is active.
func (m Mods) Has(mod Mods) bool {
	return m&mod == mod
}

// Acronyms returns the two-letter acronyms of every active mod.
func (m Mods) Acronyms() []string {
	if m == NoMod {
		return nil
	}
	var out []string
	for _, entry := range modAcronyms {
		if m&entry.mod != 0 {
			out = append(out, entry.acronym)
		}
	}
	return out
}

func (m Mods) String() string {
	if m == NoMod {
		return "NM"
	}
	return strings.Join(m.Acronyms(), "")
}
