package bancho

import (
	"fmt"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

// presenceChunkSize bounds one USER_PRESENCE_REQUEST id list.
const presenceChunkSize = 255

func (c *Client) upsertChannel(name, topic string) *model.Channel {
	channel := c.Channels.Get(name)
	if channel == nil {
		channel = model.NewChannel(name, topic)
		c.Channels.Add(channel)
	} else if topic != "" {
		channel.Topic = topic
	}
	return channel
}

func readChannelInfo(r *packet.Reader) (name, topic string, users int16, err error) {
	if name, err = r.ReadString(); err != nil {
		return "", "", 0, fmt.Errorf("reading name: %w", err)
	}
	if topic, err = r.ReadString(); err != nil {
		return "", "", 0, fmt.Errorf("reading topic: %w", err)
	}
	if users, err = r.ReadInt16(); err != nil {
		return "", "", 0, fmt.Errorf("reading user count: %w", err)
	}
	return name, topic, users, nil
}

// handleChannelInfo upserts the channel listing. #osu is the default
// channel and joined automatically once announced.
func handleChannelInfo(c *Client, r *packet.Reader) error {
	name, topic, users, err := readChannelInfo(r)
	if err != nil {
		return err
	}

	channel := c.upsertChannel(name, topic)
	channel.UserCount = users

	if channel.Name == "#osu" && !channel.Joined && !channel.Joining {
		c.JoinChannel(channel.Name)
	}

	c.Events.Emit(constants.ServerChannelInfo, channel)
	return nil
}

func handleChannelAutoJoin(c *Client, r *packet.Reader) error {
	name, topic, users, err := readChannelInfo(r)
	if err != nil {
		return err
	}

	channel := c.upsertChannel(name, topic)
	channel.UserCount = users
	channel.Joined = true
	channel.Joining = false

	c.Events.Emit(constants.ServerChannelAutoJoin, channel)
	return nil
}

// handleChannelJoinSuccess confirms a join. Entering #osu is the moment
// the initial roster is complete, so presences for every name-less player
// are requested in chunks.
func handleChannelJoinSuccess(c *Client, r *packet.Reader) error {
	name, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading name: %w", err)
	}

	channel := c.upsertChannel(name, "")
	channel.Joined = true
	channel.Joining = false
	c.logger.Info("joined channel", "channel", name)

	if name == "#osu" {
		pending := c.Players.PendingPresence()
		for len(pending) > 0 {
			chunk := pending
			if len(chunk) > presenceChunkSize {
				chunk = chunk[:presenceChunkSize]
			}
			c.RequestPresence(chunk)
			pending = pending[len(chunk):]
		}
	}

	c.Events.Emit(constants.ServerChannelJoinSuccess, channel)
	return nil
}

func handleChannelKick(c *Client, r *packet.Reader) error {
	name, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading name: %w", err)
	}

	channel := c.Channels.Get(name)
	if channel == nil {
		return nil
	}

	c.Channels.Remove(channel)
	c.logger.Info("kicked out of channel", "channel", name)

	c.Events.Emit(constants.ServerChannelKick, channel)
	return nil
}

// handleChannelInfoEnd marks the end of the initial channel batch.
func handleChannelInfoEnd(c *Client, r *packet.Reader) error {
	c.Events.Emit(constants.ServerChannelInfoEnd)
	return nil
}
