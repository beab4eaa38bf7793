package bancho

import (
	"fmt"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

// handleNewMatch announces a room while we sit in the lobby.
func handleNewMatch(c *Client, r *packet.Reader) error {
	match, err := model.DecodeMatch(r)
	if err != nil {
		return fmt.Errorf("reading match: %w", err)
	}
	c.Events.Emit(constants.ServerNewMatch, match)
	return nil
}

// handleUpdateMatch refreshes room state; our own room is replaced when
// the ids line up.
func handleUpdateMatch(c *Client, r *packet.Reader) error {
	match, err := model.DecodeMatch(r)
	if err != nil {
		return fmt.Errorf("reading match: %w", err)
	}

	if current := c.Match(); current != nil && current.ID == match.ID {
		c.setMatch(match)
	}

	c.Events.Emit(constants.ServerUpdateMatch, match)
	return nil
}

func handleDisposeMatch(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading match id: %w", err)
	}
	c.Events.Emit(constants.ServerDisposeMatch, id)
	return nil
}

func handleMatchJoinSuccess(c *Client, r *packet.Reader) error {
	match, err := model.DecodeMatch(r)
	if err != nil {
		return fmt.Errorf("reading match: %w", err)
	}

	c.setMatch(match)
	c.logger.Info("joined match", "match", match.Name, "id", match.ID)

	c.Events.Emit(constants.ServerMatchJoinSuccess, match)
	return nil
}

func handleMatchJoinFail(c *Client, r *packet.Reader) error {
	c.setMatch(nil)
	c.logger.Warn("failed to join match")
	c.Events.Emit(constants.ServerMatchJoinFail)
	return nil
}

func handleMatchStart(c *Client, r *packet.Reader) error {
	match, err := model.DecodeMatch(r)
	if err != nil {
		return fmt.Errorf("reading match: %w", err)
	}

	if current := c.Match(); current != nil && current.ID == match.ID {
		c.setMatch(match)
	}

	c.Events.Emit(constants.ServerMatchStart, match)
	return nil
}

func handleMatchScoreUpdate(c *Client, r *packet.Reader) error {
	frame, err := model.DecodeScoreFrame(r)
	if err != nil {
		return fmt.Errorf("reading score frame: %w", err)
	}
	c.Events.Emit(constants.ServerMatchScoreUpdate, frame)
	return nil
}

// handleMatchTransferHost means we became the host.
func handleMatchTransferHost(c *Client, r *packet.Reader) error {
	if match := c.Match(); match != nil {
		if info := c.Info(); info != nil {
			match.HostID = info.ID
		}
	}
	c.Events.Emit(constants.ServerMatchTransferHost)
	return nil
}

func handleMatchAllPlayersLoaded(c *Client, r *packet.Reader) error {
	c.Events.Emit(constants.ServerMatchAllPlayersLoaded)
	return nil
}

func handleMatchPlayerFailed(c *Client, r *packet.Reader) error {
	slot, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading slot id: %w", err)
	}
	c.Events.Emit(constants.ServerMatchPlayerFailed, slot)
	return nil
}

func handleMatchComplete(c *Client, r *packet.Reader) error {
	c.Events.Emit(constants.ServerMatchComplete)
	return nil
}

func handleMatchSkip(c *Client, r *packet.Reader) error {
	c.Events.Emit(constants.ServerMatchSkip)
	return nil
}

func handleMatchPlayerSkipped(c *Client, r *packet.Reader) error {
	slot, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading slot id: %w", err)
	}
	c.Events.Emit(constants.ServerMatchPlayerSkipped, slot)
	return nil
}

// handleMatchInvite is a chat-shaped packet carrying the invite text.
func handleMatchInvite(c *Client, r *packet.Reader) error {
	sender, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading sender: %w", err)
	}
	text, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading text: %w", err)
	}
	target, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading target: %w", err)
	}
	senderID, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading sender id: %w", err)
	}

	c.logger.Info("match invite", "sender", sender, "message", text)
	c.Events.Emit(constants.ServerMatchInvite, sender, text, target, senderID)
	return nil
}

func handleMatchChangePassword(c *Client, r *packet.Reader) error {
	password, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if match := c.Match(); match != nil {
		match.Password = password
	}

	c.Events.Emit(constants.ServerMatchChangePassword, password)
	return nil
}

func handleMatchAbort(c *Client, r *packet.Reader) error {
	c.Events.Emit(constants.ServerMatchAbort)
	return nil
}
