package constants

// SlotStatus is the state of one multiplayer slot.
type SlotStatus uint8

const (
	SlotOpen     SlotStatus = 1
	SlotLocked   SlotStatus = 2
	SlotNotReady SlotStatus = 4
	SlotReady    SlotStatus = 8
	SlotNoMap    SlotStatus = 16
	SlotPlaying  SlotStatus = 32
	SlotComplete SlotStatus = 64
	SlotQuit     SlotStatus = 128

	// SlotHasPlayer is the mask of states that imply an occupied slot.
	SlotHasPlayer = SlotNotReady | SlotReady | SlotNoMap | SlotPlaying | SlotComplete
)

// SlotTeam is the team assignment of a slot.
type SlotTeam uint8

const (
	TeamNeutral SlotTeam = iota
	TeamBlue
	TeamRed
)

// MatchType distinguishes standard and powerplay rooms.
type MatchType uint8

const (
	MatchStandard MatchType = iota
	MatchPowerplay
)

// ScoringType is the win condition of a match.
type ScoringType uint8

const (
	ScoringScore ScoringType = iota
	ScoringAccuracy
	ScoringCombo
	ScoringScoreV2
)

// TeamType is the team arrangement of a match.
type TeamType uint8

const (
	TeamHeadToHead TeamType = iota
	TeamTagCoop
	TeamVs
	TeamTagTeamVs
)
