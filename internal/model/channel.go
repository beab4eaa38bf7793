package model

// Channel is a chat channel advertised by the server. Identity is by name,
// which always starts with "#". Join and part requests are issued by the
// session, not by the channel itself.
type Channel struct {
	Name      string
	Topic     string
	UserCount int16

	Joined  bool
	Joining bool
}

// NewChannel creates a channel in the not-joined state.
func NewChannel(name, topic string) *Channel {
	return &Channel{Name: name, Topic: topic}
}

func (c *Channel) String() string {
	return c.Name
}
