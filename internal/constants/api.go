package constants

// Web API enums for the auxiliary endpoints.

// RankingType selects the leaderboard variant on osu-osz2-getscores.
type RankingType int

const (
	RankingTop         RankingType = 1
	RankingSelectedMod RankingType = 2
	RankingFriends     RankingType = 3
	RankingCountry     RankingType = 4
)

// SubmissionStatus is the ranked state of a beatmap in score responses.
type SubmissionStatus int

const (
	StatusUnknown SubmissionStatus = iota
	StatusNotSubmitted
	StatusPending
	StatusEditableCutoff
	StatusRanked
	StatusApproved
	StatusQualified
)

// CommentTarget selects what a comment is attached to.
type CommentTarget string

const (
	CommentMap    CommentTarget = "map"
	CommentSong   CommentTarget = "song"
	CommentReplay CommentTarget = "replay"
)

// DisplayMode filters beatmap search results by ranked state.
type DisplayMode int

const (
	DisplayRanked       DisplayMode = 0
	DisplayPending      DisplayMode = 2
	DisplayQualified    DisplayMode = 3
	DisplayAll          DisplayMode = 4
	DisplayGraveyard    DisplayMode = 5
	DisplayRankedPlayed DisplayMode = 7
)

// ModeSelect filters beatmap search results by mode.
type ModeSelect int

const (
	SelectAll      ModeSelect = -1
	SelectOsu      ModeSelect = 0
	SelectTaiko    ModeSelect = 1
	SelectCatch    ModeSelect = 2
	SelectOsuMania ModeSelect = 3
)
