package bancho

import (
	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
)

// registerBuiltins installs the protocol state machine. User handlers for
// the same packets run after these, against the already-updated state.
func registerBuiltins(d *Dispatcher) {
	// Login
	d.Register(constants.ServerUserID, handleLoginReply)
	d.Register(constants.ServerPrivileges, handlePrivileges)
	d.Register(constants.ServerFriendsList, handleFriendsList)
	d.Register(constants.ServerProtocolVersion, handleProtocolVersion)
	d.Register(constants.ServerMainMenuIcon, handleMainMenuIcon)
	d.Register(constants.ServerVersionUpdate, handleVersionUpdate)
	d.Register(constants.ServerVersionUpdateForced, handleVersionUpdateForced)
	d.Register(constants.ServerGetAttention, handleGetAttention)
	d.Register(constants.ServerNotification, handleNotification)
	d.Register(constants.ServerPong, handlePong)

	// Presence / stats
	d.Register(constants.ServerUserPresence, handleUserPresence)
	d.Register(constants.ServerUserStats, handleUserStats)
	d.Register(constants.ServerUserPresenceBundle, handleUserPresenceBundle)
	d.Register(constants.ServerUserPresenceSingle, handleUserPresenceSingle)
	d.Register(constants.ServerUserLogout, handleUserLogout)

	// Chat
	d.Register(constants.ServerSendMessage, handleSendMessage)
	d.Register(constants.ServerSilenceEnd, handleSilenceEnd)
	d.Register(constants.ServerUserSilenced, handleUserSilenced)
	d.Register(constants.ServerTargetIsSilenced, handleTargetIsSilenced)
	d.Register(constants.ServerUserDmBlocked, handleUserDmBlocked)

	// Spectating
	d.Register(constants.ServerSpectatorJoined, handleSpectatorJoined)
	d.Register(constants.ServerSpectatorLeft, handleSpectatorLeft)
	d.Register(constants.ServerFellowSpectatorJoined, handleFellowSpectatorJoined)
	d.Register(constants.ServerFellowSpectatorLeft, handleFellowSpectatorLeft)
	d.Register(constants.ServerSpectatorCantSpectate, handleSpectatorCantSpectate)
	d.Register(constants.ServerSpectateFrames, handleSpectateFrames)

	// Channels
	d.Register(constants.ServerChannelInfo, handleChannelInfo)
	d.Register(constants.ServerChannelAutoJoin, handleChannelAutoJoin)
	d.Register(constants.ServerChannelJoinSuccess, handleChannelJoinSuccess)
	d.Register(constants.ServerChannelKick, handleChannelKick)
	d.Register(constants.ServerChannelInfoEnd, handleChannelInfoEnd)

	// Multiplayer
	d.Register(constants.ServerNewMatch, handleNewMatch)
	d.Register(constants.ServerUpdateMatch, handleUpdateMatch)
	d.Register(constants.ServerDisposeMatch, handleDisposeMatch)
	d.Register(constants.ServerMatchJoinSuccess, handleMatchJoinSuccess)
	d.Register(constants.ServerMatchJoinFail, handleMatchJoinFail)
	d.Register(constants.ServerMatchStart, handleMatchStart)
	d.Register(constants.ServerMatchScoreUpdate, handleMatchScoreUpdate)
	d.Register(constants.ServerMatchTransferHost, handleMatchTransferHost)
	d.Register(constants.ServerMatchAllPlayersLoaded, handleMatchAllPlayersLoaded)
	d.Register(constants.ServerMatchPlayerFailed, handleMatchPlayerFailed)
	d.Register(constants.ServerMatchComplete, handleMatchComplete)
	d.Register(constants.ServerMatchSkip, handleMatchSkip)
	d.Register(constants.ServerMatchPlayerSkipped, handleMatchPlayerSkipped)
	d.Register(constants.ServerMatchInvite, handleMatchInvite)
	d.Register(constants.ServerMatchChangePassword, handleMatchChangePassword)
	d.Register(constants.ServerMatchAbort, handleMatchAbort)

	// Administrative
	d.Register(constants.ServerRestart, handleRestart)
	d.Register(constants.ServerAccountRestricted, handleAccountRestricted)
	d.Register(constants.ServerSwitchServer, handleSwitchServer)
	d.Register(constants.ServerSwitchTournamentServer, handleSwitchTournamentServer)
	d.Register(constants.ServerBeatmapInfoReply, handleBeatmapInfoReply)
}

// ensurePlayer returns the player with the given id, creating a name-less
// placeholder if the server referenced an unknown one.
func (c *Client) ensurePlayer(id int32) *model.Player {
	if p := c.Players.ByID(id); p != nil {
		return p
	}
	p := model.NewPlayer(id, "")
	c.Players.Add(p)
	return p
}

// playerOrRequest returns the known player with the given id. Unknown ids
// trigger a presence request and return nil; the handler gives up on the
// packet and relies on the server re-sending state for the now-known id.
func (c *Client) playerOrRequest(id int32) *model.Player {
	if p := c.Players.ByID(id); p != nil {
		return p
	}
	c.RequestPresence([]int32{id})
	return nil
}
