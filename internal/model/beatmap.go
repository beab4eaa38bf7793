package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

// BeatmapInfo is one record inside a BeatmapInfoReply packet.
type BeatmapInfo struct {
	ID           int16
	BeatmapID    int32
	BeatmapsetID int32
	ThreadID     int32
	Ranked       uint8
	OsuRank      constants.Grade
	FruitsRank   constants.Grade
	TaikoRank    constants.Grade
	ManiaRank    constants.Grade
	Checksum     string
}

// DecodeBeatmapInfo reads one record in wire order.
func DecodeBeatmapInfo(r *packet.Reader) (BeatmapInfo, error) {
	var b BeatmapInfo
	var err error

	if b.ID, err = r.ReadInt16(); err != nil {
		return b, fmt.Errorf("reading id: %w", err)
	}
	if b.BeatmapID, err = r.ReadInt32(); err != nil {
		return b, fmt.Errorf("reading beatmap id: %w", err)
	}
	if b.BeatmapsetID, err = r.ReadInt32(); err != nil {
		return b, fmt.Errorf("reading beatmapset id: %w", err)
	}
	if b.ThreadID, err = r.ReadInt32(); err != nil {
		return b, fmt.Errorf("reading thread id: %w", err)
	}
	if b.Ranked, err = r.ReadUint8(); err != nil {
		return b, fmt.Errorf("reading ranked byte: %w", err)
	}

	grades := []*constants.Grade{&b.OsuRank, &b.FruitsRank, &b.TaikoRank, &b.ManiaRank}
	for i, g := range grades {
		v, err := r.ReadUint8()
		if err != nil {
			return b, fmt.Errorf("reading grade %d: %w", i, err)
		}
		*g = constants.Grade(v)
	}

	if b.Checksum, err = r.ReadString(); err != nil {
		return b, fmt.Errorf("reading checksum: %w", err)
	}
	return b, nil
}

// Difficulty is one entry of the difficulty listing in a search result.
type Difficulty struct {
	Name string
	Mode constants.Mode
}

// OnlineBeatmap is one line of an osu-search.php response.
type OnlineBeatmap struct {
	OszFilename     string
	Artist          string
	Title           string
	Creator         string
	Status          int
	Rating          float64
	LastUpdate      time.Time
	SetID           int32
	ThreadID        int32
	HasVideo        bool
	HasStoryboard   bool
	Filesize        int64
	FilesizeNoVideo int64
	Difficulties    []Difficulty
}

// ParseOnlineBeatmap parses one pipe-separated search result line.
func ParseOnlineBeatmap(line string) (OnlineBeatmap, error) {
	var b OnlineBeatmap

	args := strings.Split(line, "|")
	if len(args) < 14 {
		return b, fmt.Errorf("parsing search line: want 14 fields, have %d", len(args))
	}

	b.OszFilename = args[0]
	b.Artist = args[1]
	b.Title = args[2]
	b.Creator = args[3]

	var err error
	if b.Status, err = strconv.Atoi(args[4]); err != nil {
		return b, fmt.Errorf("parsing status: %w", err)
	}
	if b.Rating, err = strconv.ParseFloat(args[5], 64); err != nil {
		return b, fmt.Errorf("parsing rating: %w", err)
	}
	if b.LastUpdate, err = time.Parse("2006-01-02 15:04:05", args[6]); err != nil {
		return b, fmt.Errorf("parsing last update: %w", err)
	}

	setID, err := strconv.ParseInt(args[7], 10, 32)
	if err != nil {
		return b, fmt.Errorf("parsing set id: %w", err)
	}
	b.SetID = int32(setID)

	threadID, err := strconv.ParseInt(args[8], 10, 32)
	if err != nil {
		return b, fmt.Errorf("parsing thread id: %w", err)
	}
	b.ThreadID = int32(threadID)

	b.HasVideo = args[9] == "1"
	b.HasStoryboard = args[10] == "1"

	if b.Filesize, err = strconv.ParseInt(args[11], 10, 64); err != nil {
		return b, fmt.Errorf("parsing filesize: %w", err)
	}
	if args[12] != "" {
		if b.FilesizeNoVideo, err = strconv.ParseInt(args[12], 10, 64); err != nil {
			return b, fmt.Errorf("parsing no-video filesize: %w", err)
		}
	}

	for _, entry := range strings.Split(args[13], ",") {
		if entry == "" {
			continue
		}
		name, modeStr, found := strings.Cut(entry, "@")
		if !found {
			b.Difficulties = append(b.Difficulties, Difficulty{Name: entry})
			continue
		}
		mode, err := strconv.Atoi(modeStr)
		if err != nil {
			return b, fmt.Errorf("parsing difficulty mode: %w", err)
		}
		b.Difficulties = append(b.Difficulties, Difficulty{
			Name: name,
			Mode: constants.ClampMode(uint8(mode)),
		})
	}
	return b, nil
}
