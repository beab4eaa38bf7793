// Package gosu is the facade: it resolves the client version and
// executable hash, builds the fingerprint, wires the web client, transport
// and session together, and owns the reconnect policy.
package gosu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lekuruu/gosu/internal/api"
	"github.com/Lekuruu/gosu/internal/bancho"
	"github.com/Lekuruu/gosu/internal/config"
	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/hwid"
)

// retryDelay is the fixed pause before reconnecting after a transport
// failure; a server restart adds its announced backoff on top.
const retryDelay = 15 * time.Second

type eventReg struct {
	packet   constants.ServerPacket
	fn       bancho.EventFunc
	threaded bool
}

// Game drives one configured account. Sessions are rebuilt from scratch on
// every reconnect; registrations survive because they live here.
type Game struct {
	cfg    config.Client
	logger *slog.Logger

	events []eventReg
	tasks  []*bancho.Task
	setup  []func(*bancho.Client)

	web    *api.Client
	client *bancho.Client
}

// New creates a game around the given configuration.
func New(cfg config.Client, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{cfg: cfg, logger: logger}
}

// OnEvent registers a callback fired after the built-in handler for the
// packet has run. Survives reconnects.
func (g *Game) OnEvent(packet constants.ServerPacket, fn bancho.EventFunc) {
	g.events = append(g.events, eventReg{packet: packet, fn: fn})
}

// OnEventThreaded registers a callback that runs on the worker pool.
func (g *Game) OnEventThreaded(packet constants.ServerPacket, fn bancho.EventFunc) {
	g.events = append(g.events, eventReg{packet: packet, fn: fn, threaded: true})
}

// AddTask schedules a recurring or one-shot task on every session.
func (g *Game) AddTask(task *bancho.Task) {
	g.tasks = append(g.tasks, task)
}

// OnSetup runs right after a session is built, before login. Useful for
// raw packet handlers.
func (g *Game) OnSetup(fn func(*bancho.Client)) {
	g.setup = append(g.setup, fn)
}

// Client returns the current session, nil before the first login attempt.
func (g *Game) Client() *bancho.Client { return g.client }

// Web returns the web API client of the current session.
func (g *Game) Web() *api.Client { return g.web }

// Run logs in and keeps the session alive until ctx is cancelled or a
// non-retryable failure occurs. Transport failures and server restarts
// reconnect after a fixed delay with all components rebuilt.
func (g *Game) Run(ctx context.Context) error {
	retry := false
	for {
		err := g.runOnce(ctx, retry)

		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, constants.LoginVerificationNeeded) {
			// The URL was printed; nothing to retry until the user acts.
			return nil
		}
		if g.client == nil || !g.client.Retry() {
			return err
		}

		delay := retryDelay
		if g.client != nil {
			delay += g.client.RetryAfter()
		}
		g.logger.Warn("connection lost, retrying", "delay", delay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		retry = true
	}
}

func (g *Game) runOnce(ctx context.Context, retry bool) error {
	version, err := g.resolveVersion(ctx)
	if err != nil {
		return err
	}
	logger := g.logger.With("version", version)

	hash, err := g.resolveHash(ctx, version)
	if err != nil {
		return err
	}

	clientHash := hwid.NewClientHash(hash)
	clientHash.ForceWine = clientHash.ForceWine || g.cfg.ForceLinuxEmulation
	info := hwid.NewClientInfo(version, clientHash)

	g.web = api.NewClient(api.Options{
		Server:      g.cfg.Server,
		Username:    g.cfg.Username,
		PasswordMD5: g.cfg.PasswordMD5(),
		Version:     version,
		Stream:      g.cfg.Stream,
		ClientHash:  clientHash.String(),
		Logger:      logger,
	})

	if !retry {
		if err := g.web.GetSession(ctx); err != nil {
			logger.Debug("osu-session probe failed", "err", err)
		}
		if _, err := g.web.GetBackgrounds(ctx); err != nil {
			logger.Debug("seasonal backgrounds unavailable", "err", err)
		}
	}

	if err := g.web.BanchoConnect(ctx, retry); err != nil {
		if errors.Is(err, api.ErrVerificationNeeded) {
			g.web.Verify()
			return constants.LoginVerificationNeeded
		}
		return err
	}

	client := bancho.NewClient(g.transport(version, logger), bancho.Options{
		Username:             g.cfg.Username,
		PasswordMD5:          g.cfg.PasswordMD5(),
		Version:              version,
		ClientInfo:           info.String(),
		Tournament:           g.cfg.Tournament,
		MinIdle:              time.Duration(g.cfg.MinIdle) * time.Second,
		MaxIdle:              time.Duration(g.cfg.MaxIdle) * time.Second,
		PoolSize:             g.cfg.PoolWorkers,
		DisableChatLog:       g.cfg.DisableChatLogging,
		Logger:               logger,
		OnVerificationNeeded: g.web.Verify,
	})

	for _, reg := range g.events {
		if reg.threaded {
			client.Events.RegisterThreaded(reg.packet, reg.fn)
		} else {
			client.Events.Register(reg.packet, reg.fn)
		}
	}
	client.Tasks.Seed(g.tasks)
	for _, fn := range g.setup {
		fn(client)
	}

	g.client = client
	return client.Run(ctx)
}

func (g *Game) transport(version string, logger *slog.Logger) bancho.Transport {
	if g.cfg.Transport.Protocol == "tcp" {
		return bancho.NewTCPTransport(g.cfg.Transport.IP, g.cfg.Transport.Port, logger)
	}
	return bancho.NewHTTPTransport(g.cfg.Server, version, logger)
}

// resolveVersion yields the advertised version string, e.g. "b20230326"
// or "b20230326tourney", probing the changelog when no version is pinned.
func (g *Game) resolveVersion(ctx context.Context) (string, error) {
	var version string
	if g.cfg.Version > 0 {
		version = fmt.Sprintf("b%d", g.cfg.Version)
	} else {
		probe := api.NewClient(api.Options{
			Server: g.cfg.Server,
			Stream: g.cfg.Stream,
			Logger: g.logger,
		})
		raw, err := probe.FetchVersion(ctx, g.cfg.Stream)
		if err != nil {
			return "", fmt.Errorf("resolving client version: %w", err)
		}
		version = "b" + raw
	}

	if g.cfg.Tournament {
		version += "tourney"
	}
	return version, nil
}

// resolveHash yields the osu!.exe hash for the fingerprint, asking the
// update endpoint unless one is pinned in the config.
func (g *Game) resolveHash(ctx context.Context, version string) (string, error) {
	if g.cfg.ExecutableHash != "" {
		return g.cfg.ExecutableHash, nil
	}

	probe := api.NewClient(api.Options{
		Server:  g.cfg.Server,
		Version: version,
		Stream:  g.cfg.Stream,
		Logger:  g.logger,
	})
	files, err := probe.CheckUpdates(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving executable hash: %w", err)
	}

	hash := api.ExecutableHash(files)
	if hash == "" {
		return "", fmt.Errorf("resolving executable hash: update listing has no osu!.exe entry")
	}
	return hash, nil
}
