package bancho

import (
	"fmt"
	"time"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

// handleRestart disconnects with retry; the announced backoff is added to
// the caller's reconnect delay.
func handleRestart(c *Client, r *packet.Reader) error {
	millis, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading restart timeout: %w", err)
	}

	backoff := time.Duration(millis) * time.Millisecond
	c.logger.Warn("server is restarting", "backoff", backoff)
	c.setRetryAfter(backoff)
	c.Disconnect(true)

	c.Events.Emit(constants.ServerRestart, millis)
	return nil
}

func handleAccountRestricted(c *Client, r *packet.Reader) error {
	c.logger.Error("account has been restricted")
	c.Events.Emit(constants.ServerAccountRestricted)
	c.Disconnect(false)
	return nil
}

func handleSwitchServer(c *Client, r *packet.Reader) error {
	idleTime, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading idle time: %w", err)
	}
	c.logger.Info("server requested a switch", "after_idle", idleTime)
	c.Events.Emit(constants.ServerSwitchServer, idleTime)
	return nil
}

func handleSwitchTournamentServer(c *Client, r *packet.Reader) error {
	address, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading address: %w", err)
	}
	c.logger.Info("server requested a tournament server switch", "address", address)
	c.Events.Emit(constants.ServerSwitchTournamentServer, address)
	return nil
}

func handleBeatmapInfoReply(c *Client, r *packet.Reader) error {
	count, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading count: %w", err)
	}

	beatmaps := make([]model.BeatmapInfo, 0, count)
	for i := int32(0); i < count; i++ {
		info, err := model.DecodeBeatmapInfo(r)
		if err != nil {
			return fmt.Errorf("reading beatmap %d: %w", i, err)
		}
		beatmaps = append(beatmaps, info)
	}

	c.Events.Emit(constants.ServerBeatmapInfoReply, beatmaps)
	return nil
}
