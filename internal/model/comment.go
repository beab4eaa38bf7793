package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lekuruu/gosu/internal/constants"
)

// Comment is one row of an osu-comment.php response.
type Comment struct {
	Time   int32
	Target constants.CommentTarget
	Format string
	Text   string
}

// ParseComment parses one tab-separated comment row.
func ParseComment(line string) (Comment, error) {
	var c Comment

	fields := strings.Split(line, "\t")
	if len(fields) < 4 {
		return c, fmt.Errorf("parsing comment line: want 4 fields, have %d", len(fields))
	}

	t, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return c, fmt.Errorf("parsing comment time: %w", err)
	}

	c.Time = int32(t)
	c.Target = constants.CommentTarget(fields[1])
	c.Format = fields[2]
	c.Text = fields[3]
	return c, nil
}
