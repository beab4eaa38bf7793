package bancho

import (
	"fmt"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

// handleUserPresence fills in the slow-changing half of a player. The
// packed byte folds mode into bits 5-7 and privileges into the rest; the
// historical sign-preserving mask is kept bit for bit.
func handleUserPresence(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	player := c.ensurePlayer(id)

	if player.Name, err = r.ReadString(); err != nil {
		return fmt.Errorf("reading name: %w", err)
	}

	timezone, err := r.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading timezone: %w", err)
	}
	player.Timezone = int8(timezone) - 24

	if player.CountryCode, err = r.ReadUint8(); err != nil {
		return fmt.Errorf("reading country: %w", err)
	}

	packed, err := r.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading privileges byte: %w", err)
	}
	player.Privileges = constants.Privileges(int32(packed) & -255)
	player.Mode = constants.ClampMode((packed & 0xE0) >> 5)

	if player.Longitude, err = r.ReadFloat32(); err != nil {
		return fmt.Errorf("reading longitude: %w", err)
	}
	if player.Latitude, err = r.ReadFloat32(); err != nil {
		return fmt.Errorf("reading latitude: %w", err)
	}
	if player.Rank, err = r.ReadInt32(); err != nil {
		return fmt.Errorf("reading rank: %w", err)
	}

	c.SetFastRead(true)
	c.Events.Emit(constants.ServerUserPresence, player)
	return nil
}

// handleUserStats updates the fast-changing half. Stats for an unknown id
// synthesize a placeholder and ask for its presence.
func handleUserStats(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}

	player := c.Players.ByID(id)
	if player == nil {
		c.RequestPresence([]int32{id})
		player = model.NewPlayer(id, "")
		c.Players.Add(player)
	}

	player.LastStatus = player.Status

	if player.Status, err = model.DecodeStatus(r); err != nil {
		return fmt.Errorf("reading status: %w", err)
	}
	if player.RankedScore, err = r.ReadInt64(); err != nil {
		return fmt.Errorf("reading ranked score: %w", err)
	}
	if player.Accuracy, err = r.ReadFloat32(); err != nil {
		return fmt.Errorf("reading accuracy: %w", err)
	}
	if player.Playcount, err = r.ReadInt32(); err != nil {
		return fmt.Errorf("reading playcount: %w", err)
	}
	if player.TotalScore, err = r.ReadInt64(); err != nil {
		return fmt.Errorf("reading total score: %w", err)
	}
	if player.Rank, err = r.ReadInt32(); err != nil {
		return fmt.Errorf("reading rank: %w", err)
	}
	if player.Performance, err = r.ReadInt16(); err != nil {
		return fmt.Errorf("reading performance: %w", err)
	}

	c.SetFastRead(true)
	c.Events.Emit(constants.ServerUserStats, player)
	return nil
}

func handleUserPresenceBundle(c *Client, r *packet.Reader) error {
	ids, err := r.ReadIntList()
	if err != nil {
		return fmt.Errorf("reading id list: %w", err)
	}

	var unknown []int32
	for _, id := range ids {
		if !c.Players.Contains(id) {
			c.Players.Add(model.NewPlayer(id, ""))
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		c.RequestPresence(unknown)
	}

	c.SetFastRead(true)
	c.Events.Emit(constants.ServerUserPresenceBundle, ids)
	return nil
}

func handleUserPresenceSingle(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	c.ensurePlayer(id)
	c.Events.Emit(constants.ServerUserPresenceSingle, id)
	return nil
}

func handleUserLogout(c *Client, r *packet.Reader) error {
	id, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}

	player := c.Players.ByID(id)
	if player == nil {
		return nil
	}

	if c.Spectating() == player {
		c.logger.Info("stopped spectating", "player", player.Name)
		c.setSpectating(nil)
	}
	c.Players.Remove(player)

	c.Events.Emit(constants.ServerUserLogout, player)
	return nil
}
