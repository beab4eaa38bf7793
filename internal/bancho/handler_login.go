package bancho

import (
	"fmt"
	"strings"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/metrics"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

// handleLoginReply finishes the handshake. A non-negative value is our user
// id; negative values map to a LoginError.
func handleLoginReply(c *Client, r *packet.Reader) error {
	response, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading login reply: %w", err)
	}

	if response < 0 {
		loginErr := constants.LoginError(response)
		metrics.LoginFailures.WithLabelValues(loginErr.String()).Inc()

		c.logger.Error("login rejected", "reason", loginErr.String())
		if desc := loginErr.Description(); desc != "" {
			c.logger.Error(desc)
		}

		c.setLoginError(loginErr)
		c.Disconnect(false)

		switch loginErr {
		case constants.LoginServerError:
			c.Disconnect(true)
		case constants.LoginVerificationNeeded:
			c.verificationNeeded()
		}
		return nil
	}

	c.logger.Info("logged in", "user_id", response)
	c.setUserID(response)

	info := model.NewPlayer(response, c.opts.Username)
	c.setInfo(info)
	c.Players.Add(info)
	c.SetFastRead(true)

	c.Events.Emit(constants.ServerUserID, response)
	return nil
}

func handlePrivileges(c *Client, r *packet.Reader) error {
	value, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading privileges: %w", err)
	}
	c.setPrivileges(constants.Privileges(value))
	c.Events.Emit(constants.ServerPrivileges, constants.Privileges(value))
	return nil
}

func handleFriendsList(c *Client, r *packet.Reader) error {
	ids, err := r.ReadIntList()
	if err != nil {
		return fmt.Errorf("reading friends list: %w", err)
	}
	c.setFriends(ids)
	c.Events.Emit(constants.ServerFriendsList, ids)
	return nil
}

func handleProtocolVersion(c *Client, r *packet.Reader) error {
	version, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading protocol version: %w", err)
	}
	c.setProtocol(version)
	c.Events.Emit(constants.ServerProtocolVersion, version)
	return nil
}

func handleMainMenuIcon(c *Client, r *packet.Reader) error {
	value, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading menu icon: %w", err)
	}
	image, link, _ := strings.Cut(value, "|")
	c.Events.Emit(constants.ServerMainMenuIcon, image, link)
	return nil
}

func handleVersionUpdate(c *Client, r *packet.Reader) error {
	c.logger.Info("server requested a version update")
	c.Events.Emit(constants.ServerVersionUpdate)
	return nil
}

func handleVersionUpdateForced(c *Client, r *packet.Reader) error {
	c.logger.Warn("server forced a version update")
	c.Events.Emit(constants.ServerVersionUpdateForced)
	return nil
}

func handleGetAttention(c *Client, r *packet.Reader) error {
	c.Events.Emit(constants.ServerGetAttention)
	return nil
}

func handleNotification(c *Client, r *packet.Reader) error {
	message, err := r.ReadString()
	if err != nil {
		return fmt.Errorf("reading notification: %w", err)
	}
	c.logger.Info("notification", "message", message)
	c.Events.Emit(constants.ServerNotification, message)
	return nil
}

func handlePong(c *Client, r *packet.Reader) error {
	c.Events.Emit(constants.ServerPong)
	return nil
}
