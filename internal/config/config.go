// Package config loads the client configuration from a YAML file,
// falling back to defaults when the file is absent.
package config

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transport selects the wire variant and its endpoint.
type Transport struct {
	// Protocol is "http" or "tcp".
	Protocol string `yaml:"protocol"`

	// IP and Port are only used by the tcp transport; http derives its
	// endpoint from the server domain.
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

// Metrics controls the Prometheus listener.
type Metrics struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bind_address"`
}

// Client holds everything needed to run a session.
type Client struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Server is the domain suffix, e.g. "ppy.sh".
	Server string `yaml:"server"`

	// Stream is the release stream used to resolve the client version
	// when Version is zero.
	Stream  string `yaml:"stream"`
	Version int    `yaml:"version"`

	// ExecutableHash skips the check-updates probe when set.
	ExecutableHash string `yaml:"executable_hash"`

	Tournament bool `yaml:"tournament"`

	Transport Transport `yaml:"transport"`

	// Pacing bounds in seconds for the HTTP polling loop.
	MinIdle int `yaml:"min_idle"`
	MaxIdle int `yaml:"max_idle"`

	// PoolWorkers bounds the threaded event/task workers.
	PoolWorkers int `yaml:"pool_workers"`

	ForceLinuxEmulation bool `yaml:"force_linux_emulation"`
	DisableChatLogging  bool `yaml:"disable_chat_logging"`
	DisableLogging      bool `yaml:"disable_logging"`
	LogLevel            string `yaml:"log_level"`

	Metrics Metrics `yaml:"metrics"`
}

// Default returns a client config pointing at the official server.
func Default() Client {
	return Client{
		Server:  "ppy.sh",
		Stream:  "stable40",
		MinIdle: 1,
		MaxIdle: 4,
		Transport: Transport{
			Protocol: "http",
			Port:     13381,
		},
		LogLevel: "info",
		Metrics: Metrics{
			BindAddress: "127.0.0.1:9180",
		},
	}
}

// Load reads the config from a YAML file. A missing file returns the
// defaults.
func Load(path string) (Client, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields no default can cover.
func (c *Client) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	if c.Server == "" {
		return fmt.Errorf("server is required")
	}
	switch c.Transport.Protocol {
	case "http":
	case "tcp":
		if c.Transport.IP == "" {
			return fmt.Errorf("transport.ip is required for the tcp protocol")
		}
	default:
		return fmt.Errorf("unknown transport protocol %q", c.Transport.Protocol)
	}
	return nil
}

// PasswordMD5 is the lowercase-hex MD5 the protocol transmits instead of
// the plain password.
func (c *Client) PasswordMD5() string {
	sum := md5.Sum([]byte(c.Password))
	return hex.EncodeToString(sum[:])
}
