package bancho

import (
	"testing"
	"time"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

// dispatch routes a raw payload through the built-in handler chain, the way
// the driver loop does with decoded frames.
func dispatch(c *Client, p constants.ServerPacket, build func(w *packet.Writer)) {
	w := packet.NewWriter()
	if build != nil {
		build(w)
	}
	c.packets.Dispatch(c, p, w.Bytes())
}

// queuedFrames drains the outbound queue back into decoded frames.
func queuedFrames(t *testing.T, c *Client) []packet.Frame {
	t.Helper()
	data := c.queue.Drain()
	if data == nil {
		return nil
	}
	frames, err := packet.DecodeStream(data)
	if err != nil {
		t.Fatalf("decoding queued frames: %v", err)
	}
	return frames
}

func TestHandleUserPresence(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	var emitted *model.Player
	c.Events.Register(constants.ServerUserPresence, func(args ...any) {
		emitted = args[0].(*model.Player)
	})

	dispatch(c, constants.ServerUserPresence, func(w *packet.Writer) {
		w.WriteInt32(7)
		w.WriteString("peppy")
		w.WriteUint8(26) // UTC+2, offset by 24 on the wire
		w.WriteUint8(16)
		w.WriteUint8((2 << 5) | 1) // mode in bits 5-7, supporter bit 0
		w.WriteFloat32(12.5)
		w.WriteFloat32(-33.25)
		w.WriteInt32(1)
	})

	p := c.Players.ByID(7)
	if p == nil {
		t.Fatal("player not created")
	}
	if p.Name != "peppy" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.Timezone != 2 {
		t.Fatalf("timezone = %d, want 2", p.Timezone)
	}
	if p.CountryCode != 16 {
		t.Fatalf("country = %d", p.CountryCode)
	}
	if p.Mode != constants.ModeCatchTheBeat {
		t.Fatalf("mode = %v, want fruits", p.Mode)
	}
	if p.Privileges != constants.Privileges(1) {
		t.Fatalf("privileges = %v, want 1", p.Privileges)
	}
	if p.Longitude != 12.5 || p.Latitude != -33.25 || p.Rank != 1 {
		t.Fatalf("location/rank: %+v", p)
	}
	if !c.FastRead() {
		t.Fatal("presence must arm fast read")
	}
	if emitted != p {
		t.Fatal("event must carry the updated player")
	}
}

func TestHandleUserStats_UnknownIDRequestsPresence(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	dispatch(c, constants.ServerUserStats, func(w *packet.Writer) {
		w.WriteInt32(9)
		status := model.Status{Action: constants.ActionPlaying, Text: "x"}
		status.Encode(w)
		w.WriteInt64(1000)  // ranked score
		w.WriteFloat32(98.5)
		w.WriteInt32(200)   // playcount
		w.WriteInt64(5000)  // total score
		w.WriteInt32(1234)  // rank
		w.WriteInt16(321)   // pp
	})

	p := c.Players.ByID(9)
	if p == nil {
		t.Fatal("placeholder not created")
	}
	if p.HasPresence() {
		t.Fatal("placeholder must be name-less")
	}
	if p.Status.Action != constants.ActionPlaying || p.Accuracy != 98.5 || p.Performance != 321 {
		t.Fatalf("stats: %+v", p)
	}

	frames := queuedFrames(t, c)
	if len(frames) != 1 || frames[0].ID != uint16(constants.ClientUserPresenceRequest) {
		t.Fatalf("queued %v, want one presence request", frames)
	}
}

func TestHandleUserStats_KeepsLastStatus(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	p := c.ensurePlayer(9)
	p.Status = model.Status{Action: constants.ActionAfk}

	dispatch(c, constants.ServerUserStats, func(w *packet.Writer) {
		w.WriteInt32(9)
		status := model.Status{Action: constants.ActionPlaying}
		status.Encode(w)
		w.WriteInt64(0)
		w.WriteFloat32(100)
		w.WriteInt32(0)
		w.WriteInt64(0)
		w.WriteInt32(0)
		w.WriteInt16(0)
	})

	if p.LastStatus.Action != constants.ActionAfk {
		t.Fatalf("last status = %v, want afk", p.LastStatus.Action)
	}
	if p.Status.Action != constants.ActionPlaying {
		t.Fatalf("status = %v, want playing", p.Status.Action)
	}
}

func TestHandleUserPresenceBundle(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	dispatch(c, constants.ServerUserPresenceBundle, func(w *packet.Writer) {
		w.WriteIntList([]int32{7, 9})
	})

	if !c.Players.Contains(7) || !c.Players.Contains(9) {
		t.Fatal("bundle ids must create placeholders")
	}

	frames := queuedFrames(t, c)
	if len(frames) != 1 || frames[0].ID != uint16(constants.ClientUserPresenceRequest) {
		t.Fatalf("queued %v, want one presence request", frames)
	}
	ids, err := packet.NewReader(frames[0].Payload).ReadIntList()
	if err != nil || len(ids) != 2 {
		t.Fatalf("request ids = %v, %v", ids, err)
	}

	// A second bundle with known ids requests nothing.
	dispatch(c, constants.ServerUserPresenceBundle, func(w *packet.Writer) {
		w.WriteIntList([]int32{7, 9})
	})
	if c.queue.Len() != 0 {
		t.Fatal("known ids must not trigger another request")
	}
}

func TestHandleUserLogout_ClearsSpectating(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	target := c.ensurePlayer(7)
	c.setSpectating(target)

	dispatch(c, constants.ServerUserLogout, func(w *packet.Writer) {
		w.WriteInt32(7)
	})

	if c.Players.Contains(7) {
		t.Fatal("player must be removed on logout")
	}
	if c.Spectating() != nil {
		t.Fatal("spectating target must be cleared on logout")
	}
}

func TestHandleSendMessage(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	sender := c.ensurePlayer(7)
	sender.Name = "peppy"
	c.Channels.Add(model.NewChannel("#osu", ""))

	var gotSender *model.Player
	var gotText string
	var gotTarget any
	c.Events.Register(constants.ServerSendMessage, func(args ...any) {
		gotSender = args[0].(*model.Player)
		gotText = args[1].(string)
		gotTarget = args[2]
	})

	dispatch(c, constants.ServerSendMessage, func(w *packet.Writer) {
		w.WriteString("peppy")
		w.WriteString("hello world")
		w.WriteString("#osu")
		w.WriteInt32(7)
	})

	if gotSender != sender || gotText != "hello world" {
		t.Fatalf("event: sender=%v text=%q", gotSender, gotText)
	}
	if ch, ok := gotTarget.(*model.Channel); !ok || ch.Name != "#osu" {
		t.Fatalf("target = %v, want #osu channel", gotTarget)
	}
}

func TestHandleSendMessage_UnknownChannelDropped(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	c.ensurePlayer(7).Name = "peppy"

	fired := false
	c.Events.Register(constants.ServerSendMessage, func(args ...any) { fired = true })

	dispatch(c, constants.ServerSendMessage, func(w *packet.Writer) {
		w.WriteString("peppy")
		w.WriteString("hello")
		w.WriteString("#unknown")
		w.WriteInt32(7)
	})

	if fired {
		t.Fatal("messages to unknown channels must be dropped")
	}
}

func TestHandleSilenceEnd(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	dispatch(c, constants.ServerSilenceEnd, func(w *packet.Writer) {
		w.WriteInt32(60)
	})

	if !c.Silenced() {
		t.Fatal("silence must be set")
	}
	if c.Tasks.Len() != 1 {
		t.Fatalf("tasks = %d, want the one-shot unsilence", c.Tasks.Len())
	}

	dispatch(c, constants.ServerSilenceEnd, func(w *packet.Writer) {
		w.WriteInt32(0)
	})
	if c.Silenced() {
		t.Fatal("zero remaining must lift the silence")
	}
}

func TestHandleChannelInfo_AutoJoinsOsu(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	dispatch(c, constants.ServerChannelInfo, func(w *packet.Writer) {
		w.WriteString("#osu")
		w.WriteString("main channel")
		w.WriteInt16(42)
	})

	channel := c.Channels.Get("#osu")
	if channel == nil {
		t.Fatal("channel not created")
	}
	if channel.Topic != "main channel" || channel.UserCount != 42 {
		t.Fatalf("channel: %+v", channel)
	}
	if !channel.Joining {
		t.Fatal("#osu must be marked joining")
	}

	frames := queuedFrames(t, c)
	if len(frames) != 1 || frames[0].ID != uint16(constants.ClientChannelJoin) {
		t.Fatalf("queued %v, want one channel join", frames)
	}

	// Other channels are not auto-joined.
	dispatch(c, constants.ServerChannelInfo, func(w *packet.Writer) {
		w.WriteString("#lobby")
		w.WriteString("")
		w.WriteInt16(3)
	})
	if c.queue.Len() != 0 {
		t.Fatal("#lobby must not be auto-joined")
	}
}

func TestHandleChannelJoinSuccess_RequestsPendingPresences(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	for i := 0; i < 300; i++ {
		c.Players.Add(model.NewPlayer(int32(1000+i), ""))
	}

	dispatch(c, constants.ServerChannelJoinSuccess, func(w *packet.Writer) {
		w.WriteString("#osu")
	})

	channel := c.Channels.Get("#osu")
	if channel == nil || !channel.Joined || channel.Joining {
		t.Fatalf("channel state: %+v", channel)
	}

	frames := queuedFrames(t, c)
	if len(frames) != 2 {
		t.Fatalf("queued %d frames, want 2 chunked requests", len(frames))
	}
	first, err := packet.NewReader(frames[0].Payload).ReadIntList()
	if err != nil || len(first) != presenceChunkSize {
		t.Fatalf("first chunk = %d ids, %v", len(first), err)
	}
	second, err := packet.NewReader(frames[1].Payload).ReadIntList()
	if err != nil || len(second) != 300-presenceChunkSize {
		t.Fatalf("second chunk = %d ids, %v", len(second), err)
	}
}

func TestHandleChannelKick(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	ch := model.NewChannel("#osu", "")
	ch.Joined = true
	c.Channels.Add(ch)

	dispatch(c, constants.ServerChannelKick, func(w *packet.Writer) {
		w.WriteString("#osu")
	})

	if c.Channels.Get("#osu") != nil {
		t.Fatal("kicked channel must be removed")
	}
}

func TestHandleSpectateFrames(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	c.setSpectating(c.ensurePlayer(7))

	var gotAction constants.ReplayAction
	var gotFrames []model.ReplayFrame
	var gotScore *model.ScoreFrame
	var gotExtra int32
	c.Events.Register(constants.ServerSpectateFrames, func(args ...any) {
		gotAction = args[0].(constants.ReplayAction)
		gotFrames = args[1].([]model.ReplayFrame)
		gotScore = args[2].(*model.ScoreFrame)
		gotExtra = args[3].(int32)
	})

	in := []model.ReplayFrame{
		{ButtonState: constants.ButtonLeft1, Time: 100, X: 10, Y: 20},
		{ButtonState: constants.NoButtons, Time: 116, X: 11, Y: 21},
	}
	score := model.ScoreFrame{Time: 116, Count300: 5, TotalScore: 1000}

	dispatch(c, constants.ServerSpectateFrames, func(w *packet.Writer) {
		w.WriteInt32(7)
		w.WriteUint16(uint16(len(in)))
		for i := range in {
			in[i].Encode(w)
		}
		w.WriteUint8(uint8(constants.ReplayStandard))
		score.Encode(w)
	})

	if gotAction != constants.ReplayStandard || gotExtra != 7 {
		t.Fatalf("action=%v extra=%d", gotAction, gotExtra)
	}
	if len(gotFrames) != 2 || gotFrames[0] != in[0] || gotFrames[1] != in[1] {
		t.Fatalf("frames: %+v", gotFrames)
	}
	if gotScore == nil || *gotScore != score {
		t.Fatalf("score: %+v, want %+v", gotScore, score)
	}
}

func TestHandleSpectateFrames_NoScore(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	c.setSpectating(c.ensurePlayer(7))

	fired := false
	var gotScore *model.ScoreFrame
	c.Events.Register(constants.ServerSpectateFrames, func(args ...any) {
		fired = true
		gotScore = args[2].(*model.ScoreFrame)
	})

	dispatch(c, constants.ServerSpectateFrames, func(w *packet.Writer) {
		w.WriteInt32(7)
		w.WriteUint16(0)
		w.WriteUint8(uint8(constants.ReplaySkip))
	})

	if !fired {
		t.Fatal("event not fired")
	}
	if gotScore != nil {
		t.Fatalf("score = %+v, want nil", gotScore)
	}
}

func TestHandleSpectateFrames_IgnoredWhenNotSpectating(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	fired := false
	c.Events.Register(constants.ServerSpectateFrames, func(args ...any) { fired = true })

	dispatch(c, constants.ServerSpectateFrames, func(w *packet.Writer) {
		w.WriteInt32(7)
		w.WriteUint16(0)
		w.WriteUint8(0)
	})

	if fired {
		t.Fatal("frames without a spectate target must be ignored")
	}
}

func TestHandleSpectatorJoinedAndLeft(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	c.setInfo(model.NewPlayer(1, "tester"))
	watcher := c.ensurePlayer(7)

	dispatch(c, constants.ServerSpectatorJoined, func(w *packet.Writer) {
		w.WriteInt32(7)
	})
	if !c.Info().Spectators.Contains(watcher) {
		t.Fatal("spectator not added")
	}

	dispatch(c, constants.ServerSpectatorLeft, func(w *packet.Writer) {
		w.WriteInt32(7)
	})
	if c.Info().Spectators.Contains(watcher) {
		t.Fatal("spectator not removed")
	}
}

func TestHandleMatchJoinSuccess(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	m := model.NewMatch("room", "", 1)
	m.ID = 12
	m.Slots[0] = model.Slot{PlayerID: 1, Status: constants.SlotNotReady}

	dispatch(c, constants.ServerMatchJoinSuccess, func(w *packet.Writer) {
		m.Encode(w)
	})

	got := c.Match()
	if got == nil || got.ID != 12 || got.Name != "room" {
		t.Fatalf("match: %+v", got)
	}

	dispatch(c, constants.ServerMatchJoinFail, nil)
	if c.Match() != nil {
		t.Fatal("join failure must clear the match")
	}
}

func TestHandleUpdateMatch_ReplacesCurrent(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	current := model.NewMatch("room", "", 1)
	current.ID = 12
	c.setMatch(current)

	updated := model.NewMatch("renamed", "", 1)
	updated.ID = 12
	dispatch(c, constants.ServerUpdateMatch, func(w *packet.Writer) {
		updated.Encode(w)
	})
	if c.Match().Name != "renamed" {
		t.Fatalf("match name = %q, want renamed", c.Match().Name)
	}

	// Updates for other rooms leave ours alone.
	other := model.NewMatch("other", "", 2)
	other.ID = 99
	dispatch(c, constants.ServerUpdateMatch, func(w *packet.Writer) {
		other.Encode(w)
	})
	if c.Match().ID != 12 {
		t.Fatalf("match id = %d, want 12", c.Match().ID)
	}
}

func TestHandleMatchTransferHost(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	c.setInfo(model.NewPlayer(5, "tester"))

	m := model.NewMatch("room", "", 1)
	c.setMatch(m)

	dispatch(c, constants.ServerMatchTransferHost, nil)
	if m.HostID != 5 {
		t.Fatalf("host = %d, want 5", m.HostID)
	}
}

func TestHandleRestart(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	dispatch(c, constants.ServerRestart, func(w *packet.Writer) {
		w.WriteInt32(5000)
	})

	if c.Connected() {
		t.Fatal("restart must disconnect")
	}
	if !c.Retry() {
		t.Fatal("restart must retry")
	}
	if c.RetryAfter() != 5*time.Second {
		t.Fatalf("retry after = %v, want 5s", c.RetryAfter())
	}
}

func TestHandleAccountRestricted(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	dispatch(c, constants.ServerAccountRestricted, nil)

	if c.Connected() || c.Retry() {
		t.Fatal("restriction must terminate without retry")
	}
}

func TestHandleFriendsList(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	dispatch(c, constants.ServerFriendsList, func(w *packet.Writer) {
		w.WriteIntList([]int32{3, 5, 8})
	})

	if !c.IsFriend(3) || !c.IsFriend(5) || !c.IsFriend(8) || c.IsFriend(4) {
		t.Fatalf("friends: %v", c.Friends())
	}
}

func TestHandleProtocolVersionAndPrivileges(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	dispatch(c, constants.ServerProtocolVersion, func(w *packet.Writer) {
		w.WriteInt32(19)
	})
	if c.Protocol() != 19 {
		t.Fatalf("protocol = %d, want 19", c.Protocol())
	}

	dispatch(c, constants.ServerPrivileges, func(w *packet.Writer) {
		w.WriteInt32(4)
	})
	if c.Privileges() != constants.Privileges(4) {
		t.Fatalf("privileges = %v, want 4", c.Privileges())
	}
}

func TestHandleBeatmapInfoReply(t *testing.T) {
	c := newTestClient(&stubTransport{}, Options{})

	var got []model.BeatmapInfo
	c.Events.Register(constants.ServerBeatmapInfoReply, func(args ...any) {
		got = args[0].([]model.BeatmapInfo)
	})

	dispatch(c, constants.ServerBeatmapInfoReply, func(w *packet.Writer) {
		w.WriteInt32(1)
		w.WriteInt16(0)
		w.WriteInt32(767046)
		w.WriteInt32(170942)
		w.WriteInt32(0)
		w.WriteUint8(2)
		w.WriteUint8(uint8(constants.GradeN))
		w.WriteUint8(uint8(constants.GradeN))
		w.WriteUint8(uint8(constants.GradeN))
		w.WriteUint8(uint8(constants.GradeN))
		w.WriteString("checksum")
	})

	if len(got) != 1 || got[0].BeatmapID != 767046 {
		t.Fatalf("beatmaps: %+v", got)
	}
}
