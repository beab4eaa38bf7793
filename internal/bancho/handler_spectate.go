package bancho

import (
	"fmt"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

func handleSpectatorJoined(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}
	info := c.Info()
	if info == nil {
		return nil
	}

	player.CantSpectate = false
	info.Spectators.Add(player)

	c.Events.Emit(constants.ServerSpectatorJoined, player)
	return nil
}

func handleSpectatorLeft(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}
	info := c.Info()
	if info == nil || !info.Spectators.Contains(player) {
		return nil
	}

	info.Spectators.Remove(player)

	c.Events.Emit(constants.ServerSpectatorLeft, player)
	return nil
}

func handleFellowSpectatorJoined(c *Client, r *packet.Reader) error {
	target := c.Spectating()
	if target == nil {
		return nil
	}

	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}

	target.Spectators.Add(player)

	c.Events.Emit(constants.ServerFellowSpectatorJoined, player)
	return nil
}

func handleFellowSpectatorLeft(c *Client, r *packet.Reader) error {
	target := c.Spectating()
	if target == nil {
		return nil
	}

	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}
	if !target.Spectators.Contains(player) {
		return nil
	}

	target.Spectators.Remove(player)

	c.Events.Emit(constants.ServerFellowSpectatorLeft, player)
	return nil
}

func handleSpectatorCantSpectate(c *Client, r *packet.Reader) error {
	if c.Spectating() == nil {
		return nil
	}

	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}

	player.CantSpectate = true

	c.Events.Emit(constants.ServerSpectatorCantSpectate, player)
	return nil
}

// handleSpectateFrames decodes a frame bundle from the player we watch.
// The trailing score frame is optional on the wire; a short payload simply
// means none was attached.
func handleSpectateFrames(c *Client, r *packet.Reader) error {
	if c.Spectating() == nil {
		return nil
	}

	extra, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading extra: %w", err)
	}

	count, err := r.ReadUint16()
	if err != nil {
		return fmt.Errorf("reading frame count: %w", err)
	}
	frames := make([]model.ReplayFrame, 0, count)
	for i := uint16(0); i < count; i++ {
		frame, err := model.DecodeReplayFrame(r)
		if err != nil {
			return fmt.Errorf("reading replay frame: %w", err)
		}
		frames = append(frames, frame)
	}

	action, err := r.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading replay action: %w", err)
	}

	var score *model.ScoreFrame
	if r.Remaining() > 0 {
		if frame, err := model.DecodeScoreFrame(r); err == nil {
			score = &frame
		}
	}

	c.Events.Emit(
		constants.ServerSpectateFrames,
		constants.ReplayAction(action), frames, score, extra,
	)
	return nil
}
