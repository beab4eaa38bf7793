package constants

// StatusAction is the activity reported inside a status block.
type StatusAction uint8

const (
	ActionIdle StatusAction = iota
	ActionAfk
	ActionPlaying
	ActionEditing
	ActionModding
	ActionMultiplayer
	ActionWatching
	ActionUnknown
	ActionTesting
	ActionSubmitting
	ActionPaused
	ActionLobby
	ActionMultiplaying
	ActionOsuDirect
)

var statusActionNames = [...]string{
	"Idle", "Afk", "Playing", "Editing", "Modding", "Multiplayer", "Watching",
	"Unknown", "Testing", "Submitting", "Paused", "Lobby", "Multiplaying",
	"OsuDirect",
}

func (a StatusAction) String() string {
	if int(a) < len(statusActionNames) {
		return statusActionNames[a]
	}
	return "Unknown"
}

// Mode is the game mode.
type Mode uint8

const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatchTheBeat
	ModeOsuMania
)

// ClampMode coerces an arbitrary byte into the valid mode range.
func ClampMode(v uint8) Mode {
	if v > uint8(ModeOsuMania) {
		return ModeOsuMania
	}
	return Mode(v)
}

func (m Mode) String() string {
	switch m {
	case ModeOsu:
		return "osu!"
	case ModeTaiko:
		return "taiko"
	case ModeCatchTheBeat:
		return "fruits"
	case ModeOsuMania:
		return "mania"
	}
	return "unknown"
}

// ReplayAction tags a spectate frame bundle.
type ReplayAction uint8

const (
	ReplayStandard ReplayAction = iota
	ReplayNewSong
	ReplaySkip
	ReplayCompletion
	ReplayFail
	ReplayPause
	ReplayUnpause
	ReplaySongSelect
	ReplayWatchingOther
)

// ButtonState is the button bitmask inside a replay frame.
type ButtonState uint8

const (
	ButtonLeft1 ButtonState = 1 << iota
	ButtonRight1
	ButtonLeft2
	ButtonRight2
	ButtonSmoke

	NoButtons ButtonState = 0
)

// PresenceFilter controls which presences the server pushes.
type PresenceFilter uint8

const (
	PresenceNone PresenceFilter = iota
	PresenceAll
	PresenceFriends
)

// Grade is a score rank.
type Grade uint8

const (
	GradeXH Grade = iota
	GradeSH
	GradeX
	GradeS
	GradeA
	GradeB
	GradeC
	GradeD
	GradeF
	GradeN
)

func (g Grade) String() string {
	names := [...]string{"XH", "SH", "X", "S", "A", "B", "C", "D", "F", "N"}
	if int(g) < len(names) {
		return names[g]
	}
	return "N"
}
