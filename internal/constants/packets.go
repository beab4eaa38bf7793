package constants

// Bancho Packet Identifiers
//
// The numeric assignment is fixed by the osu! stable protocol and must not be
// reordered. Client packets are sent by us, server packets are received.

// ClientPacket identifies a packet sent from client to server.
type ClientPacket uint16

const (
	ClientChangeAction                ClientPacket = 0
	ClientSendPublicMessage           ClientPacket = 1
	ClientLogout                      ClientPacket = 2
	ClientRequestStatusUpdate         ClientPacket = 3
	ClientPing                        ClientPacket = 4
	ClientStartSpectating             ClientPacket = 16
	ClientStopSpectating              ClientPacket = 17
	ClientSpectateFrames              ClientPacket = 18
	ClientErrorReport                 ClientPacket = 20
	ClientCantSpectate                ClientPacket = 21
	ClientSendPrivateMessage          ClientPacket = 25
	ClientPartLobby                   ClientPacket = 29
	ClientJoinLobby                   ClientPacket = 30
	ClientCreateMatch                 ClientPacket = 31
	ClientJoinMatch                   ClientPacket = 32
	ClientPartMatch                   ClientPacket = 33
	ClientMatchChangeSlot             ClientPacket = 38
	ClientMatchReady                  ClientPacket = 39
	ClientMatchLock                   ClientPacket = 40
	ClientMatchChangeSettings         ClientPacket = 41
	ClientMatchStart                  ClientPacket = 44
	ClientMatchScoreUpdate            ClientPacket = 47
	ClientMatchComplete               ClientPacket = 49
	ClientMatchChangeMods             ClientPacket = 51
	ClientMatchLoadComplete           ClientPacket = 52
	ClientMatchNoBeatmap              ClientPacket = 54
	ClientMatchNotReady               ClientPacket = 55
	ClientMatchFailed                 ClientPacket = 56
	ClientMatchHasBeatmap             ClientPacket = 59
	ClientMatchSkipRequest            ClientPacket = 60
	ClientChannelJoin                 ClientPacket = 63
	ClientBeatmapInfoRequest          ClientPacket = 68
	ClientMatchTransferHost           ClientPacket = 70
	ClientFriendAdd                   ClientPacket = 73
	ClientFriendRemove                ClientPacket = 74
	ClientMatchChangeTeam             ClientPacket = 77
	ClientChannelPart                 ClientPacket = 78
	ClientReceiveUpdates              ClientPacket = 79
	ClientSetAwayMessage              ClientPacket = 82
	ClientIrcOnly                     ClientPacket = 84
	ClientUserStatsRequest            ClientPacket = 85
	ClientMatchInvite                 ClientPacket = 87
	ClientMatchChangePassword         ClientPacket = 90
	ClientTournamentMatchInfoRequest  ClientPacket = 93
	ClientUserPresenceRequest         ClientPacket = 97
	ClientUserPresenceRequestAll      ClientPacket = 98
	ClientToggleBlockNonFriendDms     ClientPacket = 99
	ClientTournamentJoinMatchChannel  ClientPacket = 108
	ClientTournamentLeaveMatchChannel ClientPacket = 109
)

// ServerPacket identifies a packet received from the server.
type ServerPacket uint16

const (
	ServerUserID                  ServerPacket = 5
	ServerSendMessage             ServerPacket = 7
	ServerPong                    ServerPacket = 8
	ServerIrcChangeUsername       ServerPacket = 9 // unused
	ServerIrcQuit                 ServerPacket = 10
	ServerUserStats               ServerPacket = 11
	ServerUserLogout              ServerPacket = 12
	ServerSpectatorJoined         ServerPacket = 13
	ServerSpectatorLeft           ServerPacket = 14
	ServerSpectateFrames          ServerPacket = 15
	ServerVersionUpdate           ServerPacket = 19
	ServerSpectatorCantSpectate   ServerPacket = 22
	ServerGetAttention            ServerPacket = 23
	ServerNotification            ServerPacket = 24
	ServerUpdateMatch             ServerPacket = 26
	ServerNewMatch                ServerPacket = 27
	ServerDisposeMatch            ServerPacket = 28
	ServerToggleBlockNonFriendDms ServerPacket = 34
	ServerMatchJoinSuccess        ServerPacket = 36
	ServerMatchJoinFail           ServerPacket = 37
	ServerFellowSpectatorJoined   ServerPacket = 42
	ServerFellowSpectatorLeft     ServerPacket = 43
	ServerAllPlayersLoaded        ServerPacket = 45
	ServerMatchStart              ServerPacket = 46
	ServerMatchScoreUpdate        ServerPacket = 48
	ServerMatchTransferHost       ServerPacket = 50
	ServerMatchAllPlayersLoaded   ServerPacket = 53
	ServerMatchPlayerFailed       ServerPacket = 57
	ServerMatchComplete           ServerPacket = 58
	ServerMatchSkip               ServerPacket = 61
	ServerUnauthorized            ServerPacket = 62 // unused
	ServerChannelJoinSuccess      ServerPacket = 64
	ServerChannelInfo             ServerPacket = 65
	ServerChannelKick             ServerPacket = 66
	ServerChannelAutoJoin         ServerPacket = 67
	ServerBeatmapInfoReply        ServerPacket = 69
	ServerPrivileges              ServerPacket = 71
	ServerFriendsList             ServerPacket = 72
	ServerProtocolVersion         ServerPacket = 75
	ServerMainMenuIcon            ServerPacket = 76
	ServerMonitor                 ServerPacket = 80 // unused
	ServerMatchPlayerSkipped      ServerPacket = 81
	ServerUserPresence            ServerPacket = 83
	ServerRestart                 ServerPacket = 86
	ServerMatchInvite             ServerPacket = 88
	ServerChannelInfoEnd          ServerPacket = 89
	ServerMatchChangePassword     ServerPacket = 91
	ServerSilenceEnd              ServerPacket = 92
	ServerUserSilenced            ServerPacket = 94
	ServerUserPresenceSingle      ServerPacket = 95
	ServerUserPresenceBundle      ServerPacket = 96
	ServerUserDmBlocked           ServerPacket = 100
	ServerTargetIsSilenced        ServerPacket = 101
	ServerVersionUpdateForced     ServerPacket = 102
	ServerSwitchServer            ServerPacket = 103
	ServerAccountRestricted       ServerPacket = 104
	ServerRtx                     ServerPacket = 105 // unused
	ServerMatchAbort              ServerPacket = 106
	ServerSwitchTournamentServer  ServerPacket = 107
)

var serverPacketNames = map[ServerPacket]string{
	ServerUserID:                  "USER_ID",
	ServerSendMessage:             "SEND_MESSAGE",
	ServerPong:                    "PONG",
	ServerIrcChangeUsername:       "IRC_CHANGE_USERNAME",
	ServerIrcQuit:                 "IRC_QUIT",
	ServerUserStats:               "USER_STATS",
	ServerUserLogout:              "USER_LOGOUT",
	ServerSpectatorJoined:         "SPECTATOR_JOINED",
	ServerSpectatorLeft:           "SPECTATOR_LEFT",
	ServerSpectateFrames:          "SPECTATE_FRAMES",
	ServerVersionUpdate:           "VERSION_UPDATE",
	ServerSpectatorCantSpectate:   "SPECTATOR_CANT_SPECTATE",
	ServerGetAttention:            "GET_ATTENTION",
	ServerNotification:            "NOTIFICATION",
	ServerUpdateMatch:             "UPDATE_MATCH",
	ServerNewMatch:                "NEW_MATCH",
	ServerDisposeMatch:            "DISPOSE_MATCH",
	ServerToggleBlockNonFriendDms: "TOGGLE_BLOCK_NON_FRIEND_DMS",
	ServerMatchJoinSuccess:        "MATCH_JOIN_SUCCESS",
	ServerMatchJoinFail:           "MATCH_JOIN_FAIL",
	ServerFellowSpectatorJoined:   "FELLOW_SPECTATOR_JOINED",
	ServerFellowSpectatorLeft:     "FELLOW_SPECTATOR_LEFT",
	ServerAllPlayersLoaded:        "ALL_PLAYERS_LOADED",
	ServerMatchStart:              "MATCH_START",
	ServerMatchScoreUpdate:        "MATCH_SCORE_UPDATE",
	ServerMatchTransferHost:       "MATCH_TRANSFER_HOST",
	ServerMatchAllPlayersLoaded:   "MATCH_ALL_PLAYERS_LOADED",
	ServerMatchPlayerFailed:       "MATCH_PLAYER_FAILED",
	ServerMatchComplete:           "MATCH_COMPLETE",
	ServerMatchSkip:               "MATCH_SKIP",
	ServerUnauthorized:            "UNAUTHORIZED",
	ServerChannelJoinSuccess:      "CHANNEL_JOIN_SUCCESS",
	ServerChannelInfo:             "CHANNEL_INFO",
	ServerChannelKick:             "CHANNEL_KICK",
	ServerChannelAutoJoin:         "CHANNEL_AUTO_JOIN",
	ServerBeatmapInfoReply:        "BEATMAP_INFO_REPLY",
	ServerPrivileges:              "PRIVILEGES",
	ServerFriendsList:             "FRIENDS_LIST",
	ServerProtocolVersion:         "PROTOCOL_VERSION",
	ServerMainMenuIcon:            "MAIN_MENU_ICON",
	ServerMonitor:                 "MONITOR",
	ServerMatchPlayerSkipped:      "MATCH_PLAYER_SKIPPED",
	ServerUserPresence:            "USER_PRESENCE",
	ServerRestart:                 "RESTART",
	ServerMatchInvite:             "MATCH_INVITE",
	ServerChannelInfoEnd:          "CHANNEL_INFO_END",
	ServerMatchChangePassword:     "MATCH_CHANGE_PASSWORD",
	ServerSilenceEnd:              "SILENCE_END",
	ServerUserSilenced:            "USER_SILENCED",
	ServerUserPresenceSingle:      "USER_PRESENCE_SINGLE",
	ServerUserPresenceBundle:      "USER_PRESENCE_BUNDLE",
	ServerUserDmBlocked:           "USER_DM_BLOCKED",
	ServerTargetIsSilenced:        "TARGET_IS_SILENCED",
	ServerVersionUpdateForced:     "VERSION_UPDATE_FORCED",
	ServerSwitchServer:            "SWITCH_SERVER",
	ServerAccountRestricted:       "ACCOUNT_RESTRICTED",
	ServerRtx:                     "RTX",
	ServerMatchAbort:              "MATCH_ABORT",
	ServerSwitchTournamentServer:  "SWITCH_TOURNAMENT_SERVER",
}

// String returns the canonical protocol name of the packet.
func (p ServerPacket) String() string {
	if name, ok := serverPacketNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

var clientPacketNames = map[ClientPacket]string{
	ClientChangeAction:                "CHANGE_ACTION",
	ClientSendPublicMessage:           "SEND_PUBLIC_MESSAGE",
	ClientLogout:                      "LOGOUT",
	ClientRequestStatusUpdate:         "REQUEST_STATUS_UPDATE",
	ClientPing:                        "PING",
	ClientStartSpectating:             "START_SPECTATING",
	ClientStopSpectating:              "STOP_SPECTATING",
	ClientSpectateFrames:              "SPECTATE_FRAMES",
	ClientErrorReport:                 "ERROR_REPORT",
	ClientCantSpectate:                "CANT_SPECTATE",
	ClientSendPrivateMessage:          "SEND_PRIVATE_MESSAGE",
	ClientPartLobby:                   "PART_LOBBY",
	ClientJoinLobby:                   "JOIN_LOBBY",
	ClientCreateMatch:                 "CREATE_MATCH",
	ClientJoinMatch:                   "JOIN_MATCH",
	ClientPartMatch:                   "PART_MATCH",
	ClientMatchChangeSlot:             "MATCH_CHANGE_SLOT",
	ClientMatchReady:                  "MATCH_READY",
	ClientMatchLock:                   "MATCH_LOCK",
	ClientMatchChangeSettings:         "MATCH_CHANGE_SETTINGS",
	ClientMatchStart:                  "MATCH_START",
	ClientMatchScoreUpdate:            "MATCH_SCORE_UPDATE",
	ClientMatchComplete:               "MATCH_COMPLETE",
	ClientMatchChangeMods:             "MATCH_CHANGE_MODS",
	ClientMatchLoadComplete:           "MATCH_LOAD_COMPLETE",
	ClientMatchNoBeatmap:              "MATCH_NO_BEATMAP",
	ClientMatchNotReady:               "MATCH_NOT_READY",
	ClientMatchFailed:                 "MATCH_FAILED",
	ClientMatchHasBeatmap:             "MATCH_HAS_BEATMAP",
	ClientMatchSkipRequest:            "MATCH_SKIP_REQUEST",
	ClientChannelJoin:                 "CHANNEL_JOIN",
	ClientBeatmapInfoRequest:          "BEATMAP_INFO_REQUEST",
	ClientMatchTransferHost:           "MATCH_TRANSFER_HOST",
	ClientFriendAdd:                   "FRIEND_ADD",
	ClientFriendRemove:                "FRIEND_REMOVE",
	ClientMatchChangeTeam:             "MATCH_CHANGE_TEAM",
	ClientChannelPart:                 "CHANNEL_PART",
	ClientReceiveUpdates:              "RECEIVE_UPDATES",
	ClientSetAwayMessage:              "SET_AWAY_MESSAGE",
	ClientIrcOnly:                     "IRC_ONLY",
	ClientUserStatsRequest:            "USER_STATS_REQUEST",
	ClientMatchInvite:                 "MATCH_INVITE",
	ClientMatchChangePassword:         "MATCH_CHANGE_PASSWORD",
	ClientTournamentMatchInfoRequest:  "TOURNAMENT_MATCH_INFO_REQUEST",
	ClientUserPresenceRequest:         "USER_PRESENCE_REQUEST",
	ClientUserPresenceRequestAll:      "USER_PRESENCE_REQUEST_ALL",
	ClientToggleBlockNonFriendDms:     "TOGGLE_BLOCK_NON_FRIEND_DMS",
	ClientTournamentJoinMatchChannel:  "TOURNAMENT_JOIN_MATCH_CHANNEL",
	ClientTournamentLeaveMatchChannel: "TOURNAMENT_LEAVE_MATCH_CHANNEL",
}

// String returns the canonical protocol name of the packet.
func (p ClientPacket) String() string {
	if name, ok := clientPacketNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}
