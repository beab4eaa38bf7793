package bancho

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

// handleSendMessage resolves sender and target before surfacing the chat
// event. The target is a channel when the name starts with "#", a player
// otherwise; the event receives (sender, text, target).
func handleSendMessage(c *Client, r *packet.Reader) error {
	senderName, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading sender: %w", err)
	}
	text, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading text: %w", err)
	}
	targetName, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading target: %w", err)
	}
	senderID, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading sender id: %w", err)
	}

	sender := c.Players.ByID(senderID)
	if sender == nil {
		if sender = c.Players.ByName(senderName); sender == nil {
			return nil
		}
	}
	if !sender.HasPresence() {
		c.RequestPresence([]int32{sender.ID})
	}

	var target any
	if strings.HasPrefix(targetName, "#") {
		channel := c.Channels.Get(targetName)
		if channel == nil {
			return nil
		}
		target = channel
	} else {
		player := c.Players.ByName(targetName)
		if player == nil {
			return nil
		}
		if !player.HasPresence() {
			c.RequestPresence([]int32{player.ID})
		}
		target = player
	}

	if c.ChatLogEnabled() {
		c.logger.Info("chat",
			"sender", senderName,
			"target", targetName,
			"message", text,
		)
	}

	c.SetFastRead(true)
	c.Events.Emit(constants.ServerSendMessage, sender, text, target)
	return nil
}

// handleSilenceEnd reports our own silence. A positive value arms a
// one-shot task that lifts the flag after the announced duration.
func handleSilenceEnd(c *Client, r *packet.Reader) error {
	remaining, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading remaining silence: %w", err)
	}

	if remaining > 0 {
		c.setSilenced(true)
		c.logger.Warn("you have been silenced", "seconds", remaining)
		c.Tasks.Register(&Task{
			Name:     "unsilence",
			Run:      c.Unsilence,
			Interval: time.Duration(remaining) * time.Second,
		})
	} else {
		c.Unsilence()
	}

	c.Events.Emit(constants.ServerSilenceEnd, remaining)
	return nil
}

func handleUserSilenced(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}

	player.Silenced = true
	c.logger.Info("player silenced", "player", player.Name)
	c.Events.Emit(constants.ServerUserSilenced, player)
	return nil
}

func handleTargetIsSilenced(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}

	player.Silenced = true
	c.logger.Info("target is silenced and cannot respond", "player", player.Name)
	c.Events.Emit(constants.ServerTargetIsSilenced, player)
	return nil
}

func handleUserDmBlocked(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.playerOrRequest(id)
	if player == nil {
		return nil
	}

	player.DmsBlocked = true
	c.logger.Info("player blocked their dms", "player", player.Name)
	c.Events.Emit(constants.ServerUserDmBlocked, player)
	return nil
}
