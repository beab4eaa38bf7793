// Package bancho implements the online half of an osu! stable client: the
// login handshake, the adaptive polling loop, the packet dispatcher with
// its built-in handlers, and the chat/spectating/multiplayer state that the
// server pushes down.
package bancho

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/metrics"
	"github.com/Lekuruu/gosu/internal/model"
	"github.com/Lekuruu/gosu/internal/packet"
)

const (
	// Responses above this size hint that the server has more data
	// buffered; the next poll happens immediately.
	fastReadThreshold = 10000

	defaultMinIdle = 1 * time.Second
	defaultMaxIdle = 4 * time.Second
)

// Options configures a session.
type Options struct {
	Username    string
	PasswordMD5 string

	// Version is the osu-version request header value, e.g. "b20220829.5".
	Version string

	// ClientInfo is the third login line:
	// version|utc_offset|display_city|client_hash|block_non_friend_dms.
	ClientInfo string

	Tournament bool

	MinIdle time.Duration
	MaxIdle time.Duration

	// PoolSize bounds the workers running threaded events and tasks.
	PoolSize int

	// DisableChatLog suppresses the info log line for incoming chat.
	DisableChatLog bool

	Logger *slog.Logger

	// OnVerificationNeeded fires when the server demands account
	// verification; the session terminates without retry afterwards.
	OnVerificationNeeded func()
}

// Client is one bancho session. Construct with NewClient, drive with Run;
// a client is single-use and a reconnect builds a fresh one.
type Client struct {
	transport Transport
	opts      Options
	logger    *slog.Logger

	Players  *Players
	Channels *Channels
	Events   *EventHandler
	Tasks    *TaskManager

	packets *Dispatcher
	pool    *WorkerPool
	queue   *Queue

	mu         sync.RWMutex
	userID     int32
	connected  bool
	retry      bool
	loginErr   constants.LoginError
	info       *model.Player
	spectating *model.Player
	match      *model.Match
	inLobby    bool
	silenced   bool
	privileges constants.Privileges
	protocol   int32
	friends    map[int32]struct{}
	pingCount  int
	fastRead   bool
	lastAction time.Time
	retryAfter time.Duration

	now func() time.Time
}

// NewClient builds a session over the given transport. Built-in handlers
// are registered immediately; user events can be added before Run.
func NewClient(transport Transport, opts Options) *Client {
	if opts.MinIdle <= 0 {
		opts.MinIdle = defaultMinIdle
	}
	if opts.MaxIdle <= 0 {
		opts.MaxIdle = defaultMaxIdle
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", xid.New().String())

	pool := NewWorkerPool(opts.PoolSize, logger)
	c := &Client{
		transport: transport,
		opts:      opts,
		logger:    logger,
		Players:   NewPlayers(),
		Channels:  NewChannels(),
		Events:    NewEventHandler(pool, logger),
		Tasks:     NewTaskManager(pool, logger),
		packets:   NewDispatcher(logger),
		pool:      pool,
		queue:     NewQueue(),
		userID:    -1,
		retry:     true,
		friends:   make(map[int32]struct{}),
		now:       time.Now,
	}
	registerBuiltins(c.packets)
	return c
}

// Handlers exposes the packet dispatcher for raw packet callbacks. They run
// after the built-in handler for the same packet.
func (c *Client) Handlers() *Dispatcher { return c.packets }

// Logger returns the session logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Run performs the login handshake and drives the main loop until the
// session disconnects or ctx is cancelled. Cancellation sends a LOGOUT and
// one final cycle before returning.
func (c *Client) Run(ctx context.Context) error {
	defer c.pool.Close()
	defer c.transport.Close()

	if err := c.connect(ctx); err != nil {
		return err
	}

	for c.Connected() {
		if err := c.sleep(ctx, c.RequestInterval()); err != nil {
			c.Exit(context.Background())
			return err
		}
		c.cycle(ctx)
		c.Tasks.Execute()
	}
	return nil
}

// connect sends the three-line login payload and dispatches the reply.
func (c *Client) connect(ctx context.Context) error {
	payload := fmt.Sprintf(
		"%s\r\n%s\r\n%s\r\n",
		c.opts.Username, c.opts.PasswordMD5, c.opts.ClientInfo,
	)

	result, err := c.transport.Login(ctx, []byte(payload))
	if err != nil {
		c.Disconnect(true)
		return err
	}

	c.mu.Lock()
	c.connected = true
	c.lastAction = c.now()
	c.mu.Unlock()

	if !c.transport.Direct() && result.Token == "" {
		// Rejected login: the body carries a negative LoginReply which
		// the handler maps to a LoginError.
		c.mu.Lock()
		c.connected = false
		c.retry = false
		c.mu.Unlock()
	}

	for _, frame := range result.Frames {
		c.dispatch(frame)
	}

	if err := c.LoginError(); err != nil {
		return err
	}
	return nil
}

// cycle flushes the queue, dispatches the reply and updates the pacing
// state. Transport failures disconnect with retry=true.
func (c *Client) cycle(ctx context.Context) {
	started := c.now()

	var outgoing []byte
	real := false
	if !c.transport.Direct() {
		if c.queue.Len() == 0 {
			c.Ping()
			c.mu.Lock()
			c.pingCount++
			c.mu.Unlock()
		} else {
			real = true
			c.mu.Lock()
			c.pingCount = 0
			c.mu.Unlock()
		}
		outgoing = c.queue.Drain()
	}

	// The flag pays for exactly one immediate poll.
	c.mu.Lock()
	c.fastRead = false
	c.mu.Unlock()

	result, err := c.transport.Cycle(ctx, outgoing)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Error("connection lost", "err", err)
		metrics.Reconnects.Inc()
		c.Disconnect(true)
		return
	}

	metrics.BytesReceived.Add(float64(result.BodySize))
	metrics.CycleDuration.Observe(c.now().Sub(started).Seconds())

	for _, frame := range result.Frames {
		c.dispatch(frame)
	}

	c.mu.Lock()
	if result.BodySize > fastReadThreshold {
		c.fastRead = true
	}
	if real {
		c.lastAction = c.now()
	}
	c.mu.Unlock()
}

func (c *Client) dispatch(frame packet.Frame) {
	p := constants.ServerPacket(frame.ID)
	metrics.PacketsReceived.WithLabelValues(p.String()).Inc()
	c.logger.Debug("received packet", "packet", p.String(), "size", len(frame.Payload))
	c.packets.Dispatch(c, p, frame.Payload)
}

// sleep waits for the polling interval or until ctx is cancelled.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RequestInterval computes the next polling interval. Direct transports
// never pace; they block on the socket instead.
func (c *Client) RequestInterval() time.Duration {
	if c.transport.Direct() {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fastRead {
		return 0
	}
	if c.opts.Tournament {
		return time.Second
	}

	interval := 1.0
	if c.spectating == nil {
		idle := c.now().Sub(c.lastAction).Seconds()
		interval *= 1 + idle/10
		interval *= 1 + float64(c.pingCount)
	}

	d := time.Duration(interval * float64(time.Second))
	if d < c.opts.MinIdle {
		d = c.opts.MinIdle
	}
	if d > c.opts.MaxIdle {
		d = c.opts.MaxIdle
	}
	return d
}

// Exit sends a LOGOUT, flushes one final cycle and marks the session done
// without retry.
func (c *Client) Exit(ctx context.Context) {
	if !c.Connected() {
		return
	}

	w := packet.NewWriter()
	w.WriteUint32(0)
	c.Enqueue(constants.ClientLogout, w.Bytes())

	if !c.transport.Direct() {
		if _, err := c.transport.Cycle(ctx, c.queue.Drain()); err != nil {
			c.logger.Debug("final cycle failed", "err", err)
		}
	}

	c.mu.Lock()
	c.connected = false
	c.retry = false
	c.mu.Unlock()
}

// Enqueue frames a packet and hands it to the transport: queued for the
// next cycle on HTTP, written immediately on TCP.
func (c *Client) Enqueue(pkt constants.ClientPacket, payload []byte) {
	frame := packet.EncodeFrame(uint16(pkt), payload)
	metrics.PacketsSent.WithLabelValues(pkt.String()).Inc()
	c.logger.Debug("sending packet", "packet", pkt.String(), "size", len(payload))

	if c.transport.Direct() {
		if err := c.transport.Send(frame); err != nil {
			c.logger.Error("connection lost", "err", err)
			metrics.Reconnects.Inc()
			c.Disconnect(true)
		}
		return
	}
	c.queue.Push(frame)
}

// enqueueEmpty sends a packet without payload.
func (c *Client) enqueueEmpty(pkt constants.ClientPacket) {
	c.Enqueue(pkt, nil)
}

// Connected reports whether the main loop should keep running.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Retry reports whether the caller should reconnect after Run returns.
func (c *Client) Retry() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.retry
}

// Disconnect tears the session down; retry tells the caller whether to
// reconnect.
func (c *Client) Disconnect(retry bool) {
	c.mu.Lock()
	c.connected = false
	c.retry = retry
	c.mu.Unlock()
}

// LoginError returns the server-side rejection, if any.
func (c *Client) LoginError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loginErr == 0 {
		return nil
	}
	return c.loginErr
}

func (c *Client) setLoginError(e constants.LoginError) {
	c.mu.Lock()
	c.loginErr = e
	c.mu.Unlock()
}

// UserID returns the id assigned at login, -1 before that.
func (c *Client) UserID() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) setUserID(id int32) {
	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
}

// Info returns our own player, nil before a successful login.
func (c *Client) Info() *model.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

func (c *Client) setInfo(p *model.Player) {
	c.mu.Lock()
	c.info = p
	c.mu.Unlock()
}

// Spectating returns the player we are watching, nil otherwise.
func (c *Client) Spectating() *model.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spectating
}

func (c *Client) setSpectating(p *model.Player) {
	c.mu.Lock()
	c.spectating = p
	c.mu.Unlock()
}

// Match returns the multiplayer match we are part of, nil otherwise.
func (c *Client) Match() *model.Match {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.match
}

func (c *Client) setMatch(m *model.Match) {
	c.mu.Lock()
	c.match = m
	c.mu.Unlock()
}

// InLobby reports whether we are inside the multiplayer lobby.
func (c *Client) InLobby() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inLobby
}

func (c *Client) setInLobby(v bool) {
	c.mu.Lock()
	c.inLobby = v
	c.mu.Unlock()
}

// Silenced reports whether the server muted us.
func (c *Client) Silenced() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.silenced
}

func (c *Client) setSilenced(v bool) {
	c.mu.Lock()
	c.silenced = v
	if c.info != nil {
		c.info.Silenced = v
	}
	c.mu.Unlock()
}

// Unsilence lifts a silence once its duration has passed.
func (c *Client) Unsilence() {
	if !c.Silenced() {
		return
	}
	c.setSilenced(false)
	c.logger.Info("you can now talk again")
}

// Privileges returns the privilege set the server granted.
func (c *Client) Privileges() constants.Privileges {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.privileges
}

func (c *Client) setPrivileges(p constants.Privileges) {
	c.mu.Lock()
	c.privileges = p
	if c.info != nil {
		c.info.Privileges = p
	}
	c.mu.Unlock()
}

// Protocol returns the negotiated protocol version.
func (c *Client) Protocol() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.protocol
}

func (c *Client) setProtocol(v int32) {
	c.mu.Lock()
	c.protocol = v
	c.mu.Unlock()
}

// Friends returns a snapshot of the friend ids.
func (c *Client) Friends() []int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int32, 0, len(c.friends))
	for id := range c.friends {
		ids = append(ids, id)
	}
	return ids
}

// IsFriend reports whether id is on the friend list.
func (c *Client) IsFriend(id int32) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.friends[id]
	return ok
}

func (c *Client) setFriends(ids []int32) {
	c.mu.Lock()
	c.friends = make(map[int32]struct{}, len(ids))
	for _, id := range ids {
		c.friends[id] = struct{}{}
	}
	c.mu.Unlock()
}

func (c *Client) addFriend(id int32) {
	c.mu.Lock()
	c.friends[id] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) removeFriend(id int32) {
	c.mu.Lock()
	delete(c.friends, id)
	c.mu.Unlock()
}

// PingCount returns consecutive cycles with an empty queue.
func (c *Client) PingCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pingCount
}

// FastRead reports whether the next poll should happen immediately.
func (c *Client) FastRead() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fastRead
}

// SetFastRead requests an immediate next poll; used by handlers that know
// more data is pending.
func (c *Client) SetFastRead(v bool) {
	c.mu.Lock()
	c.fastRead = v
	c.mu.Unlock()
}

// Tournament reports whether this session runs as a tournament client.
func (c *Client) Tournament() bool { return c.opts.Tournament }

// ChatLogEnabled reports whether incoming chat should be logged.
func (c *Client) ChatLogEnabled() bool { return !c.opts.DisableChatLog }

// RetryAfter returns the extra backoff announced by a server restart.
func (c *Client) RetryAfter() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.retryAfter
}

func (c *Client) setRetryAfter(d time.Duration) {
	c.mu.Lock()
	c.retryAfter = d
	c.mu.Unlock()
}

func (c *Client) verificationNeeded() {
	if c.opts.OnVerificationNeeded != nil {
		c.opts.OnVerificationNeeded()
	}
}
