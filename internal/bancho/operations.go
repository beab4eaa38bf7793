package bancho

import (
	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

// Outbound operations. Each method packages one client packet and hands it
// to the transport; none of them blocks on the server reply.

// Ping keeps the session alive when the queue is empty.
func (c *Client) Ping() {
	c.enqueueEmpty(constants.ClientPing)
}

// RequestPresence asks for presence blocks of the given ids.
func (c *Client) RequestPresence(ids []int32) {
	w := packet.NewWriter()
	w.WriteIntList(ids)
	c.Enqueue(constants.ClientUserPresenceRequest, w.Bytes())
}

// RequestStats asks for stats blocks of the given ids.
func (c *Client) RequestStats(ids []int32) {
	w := packet.NewWriter()
	w.WriteIntList(ids)
	c.Enqueue(constants.ClientUserStatsRequest, w.Bytes())
}

// RequestAllPresences asks for a full presence bundle.
func (c *Client) RequestAllPresences() {
	c.enqueueEmpty(constants.ClientUserPresenceRequestAll)
}

// RequestStatus asks the server to echo our own stats back.
func (c *Client) RequestStatus() {
	c.enqueueEmpty(constants.ClientRequestStatusUpdate)
}

// UpdateStatus advertises our current status block.
func (c *Client) UpdateStatus() {
	info := c.Info()
	if info == nil {
		return
	}
	w := packet.NewWriter()
	info.Status.Encode(w)
	c.Enqueue(constants.ClientChangeAction, w.Bytes())
}

// StartSpectating tunes into the target's replay stream and mirrors their
// status.
func (c *Client) StartSpectating(target *model.Player) {
	if target == nil {
		return
	}

	w := packet.NewWriter()
	w.WriteInt32(target.ID)
	c.Enqueue(constants.ClientStartSpectating, w.Bytes())
	c.setSpectating(target)

	if info := c.Info(); info != nil {
		info.Status = model.Status{
			Action:    constants.ActionWatching,
			Text:      target.Status.Text,
			Checksum:  target.Status.Checksum,
			Mods:      target.Status.Mods,
			Mode:      target.Status.Mode,
			BeatmapID: target.Status.BeatmapID,
		}
	}
	c.UpdateStatus()
}

// StopSpectating leaves the replay stream and resets our status.
func (c *Client) StopSpectating() {
	c.enqueueEmpty(constants.ClientStopSpectating)
	c.setSpectating(nil)

	if info := c.Info(); info != nil {
		info.Status.Reset()
	}
	c.UpdateStatus()
}

// CantSpectate tells the server we lack the beatmap being played.
func (c *Client) CantSpectate() {
	c.enqueueEmpty(constants.ClientCantSpectate)
}

// SendFrames streams replay frames to our spectators. The extra field
// carries the spectated player's id while watching, the provided seed
// otherwise.
func (c *Client) SendFrames(action constants.ReplayAction, frames []model.ReplayFrame, score *model.ScoreFrame, seed int32) {
	extra := seed
	if target := c.Spectating(); target != nil {
		extra = target.ID
	}

	w := packet.NewWriter()
	w.WriteInt32(extra)
	w.WriteUint16(uint16(len(frames)))
	for i := range frames {
		frames[i].Encode(w)
	}
	w.WriteUint8(uint8(action))
	if score != nil {
		score.Encode(w)
	}
	c.Enqueue(constants.ClientSpectateFrames, w.Bytes())
}

// JoinChannel asks to join a chat channel and marks it as pending.
func (c *Client) JoinChannel(name string) {
	if channel := c.Channels.Get(name); channel != nil {
		channel.Joining = true
	}
	w := packet.NewWriter()
	w.WriteString(name)
	c.Enqueue(constants.ClientChannelJoin, w.Bytes())
}

// LeaveChannel parts a chat channel.
func (c *Client) LeaveChannel(name string) {
	if channel := c.Channels.Get(name); channel != nil {
		channel.Joined = false
		channel.Joining = false
	}
	w := packet.NewWriter()
	w.WriteString(name)
	c.Enqueue(constants.ClientChannelPart, w.Bytes())
}

func (c *Client) sendMessage(pkt constants.ClientPacket, target, text string) {
	if c.Silenced() {
		c.logger.Warn("dropping message while silenced", "target", target)
		return
	}
	info := c.Info()
	if info == nil {
		return
	}

	w := packet.NewWriter()
	w.WriteString(info.Name)
	w.WriteString(text)
	w.WriteString(target)
	w.WriteInt32(info.ID)
	c.Enqueue(pkt, w.Bytes())
}

// SendPublicMessage posts into a channel.
func (c *Client) SendPublicMessage(channel, text string) {
	c.sendMessage(constants.ClientSendPublicMessage, channel, text)
}

// SendPrivateMessage sends a DM to the named player.
func (c *Client) SendPrivateMessage(target, text string) {
	c.sendMessage(constants.ClientSendPrivateMessage, target, text)
}

// AddFriend adds the id server-side and to the local friend set.
func (c *Client) AddFriend(id int32) {
	w := packet.NewWriter()
	w.WriteInt32(id)
	c.Enqueue(constants.ClientFriendAdd, w.Bytes())
	c.addFriend(id)
}

// RemoveFriend removes the id server-side and from the local friend set.
func (c *Client) RemoveFriend(id int32) {
	w := packet.NewWriter()
	w.WriteInt32(id)
	c.Enqueue(constants.ClientFriendRemove, w.Bytes())
	c.removeFriend(id)
}

// JoinLobby enters the multiplayer lobby; the server starts pushing match
// listings afterwards.
func (c *Client) JoinLobby() {
	c.enqueueEmpty(constants.ClientJoinLobby)
	c.setInLobby(true)
}

// LeaveLobby exits the multiplayer lobby.
func (c *Client) LeaveLobby() {
	c.enqueueEmpty(constants.ClientPartLobby)
	c.setInLobby(false)
}

// CreateMatch opens a new multiplayer room from the given settings.
func (c *Client) CreateMatch(m *model.Match) {
	w := packet.NewWriter()
	m.Encode(w)
	c.Enqueue(constants.ClientCreateMatch, w.Bytes())
}

// JoinMatch enters an existing room.
func (c *Client) JoinMatch(id int32, password string) {
	w := packet.NewWriter()
	w.WriteInt32(id)
	w.WriteString(password)
	c.Enqueue(constants.ClientJoinMatch, w.Bytes())
}

// LeaveMatch exits the current room.
func (c *Client) LeaveMatch() {
	c.enqueueEmpty(constants.ClientPartMatch)
	c.setMatch(nil)
}
