package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Lekuruu/gosu/internal/constants"
)

// Score is one leaderboard row of an osu-osz2-getscores response.
type Score struct {
	ID         int64
	Username   string
	TotalScore int64
	MaxCombo   int32
	Count50    int32
	Count100   int32
	Count300   int32
	CountMiss  int32
	CountKatu  int32
	CountGeki  int32
	Perfect    bool
	Mods       constants.Mods
	UserID     int32
	Rank       int32
	Date       time.Time
	Mode       constants.Mode
	HasReplay  bool
}

// ParseScore parses one pipe-separated leaderboard row.
func ParseScore(line string, mode constants.Mode) (Score, error) {
	var s Score

	fields := strings.Split(line, "|")
	if len(fields) < 16 {
		return s, fmt.Errorf("parsing score line: want 16 fields, have %d", len(fields))
	}

	ints := make([]int64, len(fields))
	for _, i := range []int{0, 2, 3, 4, 5, 6, 7, 8, 9, 11, 12, 14} {
		v, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return s, fmt.Errorf("parsing score field %d: %w", i, err)
		}
		ints[i] = v
	}

	s.ID = ints[0]
	s.Username = fields[1]
	s.TotalScore = ints[2]
	s.MaxCombo = int32(ints[3])
	s.Count50 = int32(ints[4])
	s.Count100 = int32(ints[5])
	s.Count300 = int32(ints[6])
	s.CountMiss = int32(ints[7])
	s.CountKatu = int32(ints[8])
	s.CountGeki = int32(ints[9])
	s.Perfect = fields[10] == "1"
	s.Mods = constants.Mods(ints[11])
	s.UserID = int32(ints[12])

	if fields[13] != "" {
		rank, err := strconv.ParseInt(fields[13], 10, 32)
		if err != nil {
			return s, fmt.Errorf("parsing score rank: %w", err)
		}
		s.Rank = int32(rank)
	}

	s.Date = time.Unix(ints[14], 0)
	s.Mode = mode
	s.HasReplay = fields[15] == "1"
	return s, nil
}

// ScoreResponse is the parsed body of an osu-osz2-getscores response.
type ScoreResponse struct {
	Status        constants.SubmissionStatus
	BeatmapID     int32
	BeatmapsetID  int32
	TotalScores   int32
	GlobalOffset  int32
	BeatmapFormat string
	Rating        float64
	PersonalBest  *Score
	Scores        []Score
}

// statusCodes maps the first response field onto a submission status.
// The web responses use a different numbering than the database values.
var statusCodes = map[string]constants.SubmissionStatus{
	"-1": constants.StatusNotSubmitted,
	"0":  constants.StatusPending,
	"1":  constants.StatusUnknown,
	"2":  constants.StatusRanked,
	"3":  constants.StatusApproved,
	"4":  constants.StatusQualified,
}

// ParseScoreResponse parses a full leaderboard response body.
func ParseScoreResponse(body string, mode constants.Mode) (*ScoreResponse, error) {
	lines := strings.Split(body, "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("parsing score response: empty body")
	}

	resp := &ScoreResponse{}

	header := strings.Split(lines[0], "|")
	status, ok := statusCodes[header[0]]
	if !ok {
		return nil, fmt.Errorf("parsing score response: unknown status %q", header[0])
	}
	resp.Status = status

	if len(header) > 3 {
		beatmapID, err := strconv.ParseInt(header[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing beatmap id: %w", err)
		}
		setID, err := strconv.ParseInt(header[3], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing beatmapset id: %w", err)
		}
		resp.BeatmapID = int32(beatmapID)
		resp.BeatmapsetID = int32(setID)

		if len(header) > 4 {
			total, err := strconv.ParseInt(header[4], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("parsing total scores: %w", err)
			}
			resp.TotalScores = int32(total)
		}
	}

	if len(lines) > 3 {
		offset, err := strconv.ParseInt(lines[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing global offset: %w", err)
		}
		resp.GlobalOffset = int32(offset)
		resp.BeatmapFormat = lines[2]

		if resp.Rating, err = strconv.ParseFloat(lines[3], 64); err != nil {
			return nil, fmt.Errorf("parsing rating: %w", err)
		}
	}

	if len(lines) > 4 {
		if lines[4] != "" {
			best, err := ParseScore(lines[4], mode)
			if err != nil {
				return nil, fmt.Errorf("parsing personal best: %w", err)
			}
			resp.PersonalBest = &best
		}
		for _, line := range lines[5:] {
			if line == "" {
				continue
			}
			score, err := ParseScore(line, mode)
			if err != nil {
				return nil, fmt.Errorf("parsing leaderboard row: %w", err)
			}
			resp.Scores = append(resp.Scores, score)
		}
	}
	return resp, nil
}
