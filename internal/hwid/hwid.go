// Package hwid builds the client fingerprint sent on login. The server
// uses it to tell devices apart; every component is overridable for
// clients that need a stable identity across hosts.
package hwid

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"net"
	"runtime"
	"strings"
	"time"
)

// wineMarker replaces the adapter components on non-Windows hosts, the
// same value the real client reports under wine.
const wineMarker = "runningunderwine"

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ClientHash is the five-part hardware identity. Zero-value fields fall
// back to values read from the host.
type ClientHash struct {
	ExecutableHash string

	// Adapters holds MAC addresses in the Windows "AA-BB-CC-DD-EE-FF"
	// form. Populated from the host interfaces when nil.
	Adapters []string

	// UninstallID and DiskSignature are lowercase-hex MD5 strings.
	UninstallID   string
	DiskSignature string

	// ForceWine reports the wine marker regardless of the host OS.
	ForceWine bool
}

// NewClientHash builds a hash around the given executable hash, reading
// adapter MACs from the host interfaces.
func NewClientHash(executableHash string) *ClientHash {
	return &ClientHash{
		ExecutableHash: executableHash,
		Adapters:       hostAdapters(),
	}
}

func hostAdapters() []string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	var out []string
	for _, iface := range interfaces {
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		mac := strings.ToUpper(iface.HardwareAddr.String())
		out = append(out, strings.ReplaceAll(mac, ":", "-"))
	}
	return out
}

func (h *ClientHash) wine() bool {
	return h.ForceWine || runtime.GOOS != "windows"
}

// AdapterString joins the hyphen-stripped adapter MACs with periods,
// keeping the historical empty slot at index 3.
func (h *ClientHash) AdapterString() string {
	if h.wine() {
		return wineMarker
	}

	var adapters []string
	for _, adapter := range h.Adapters {
		if strings.Count(adapter, "-") != 5 {
			continue
		}
		adapters = append(adapters, strings.ReplaceAll(adapter, "-", ""))
	}
	if len(adapters) >= 3 {
		adapters = append(adapters[:3], append([]string{""}, adapters[3:]...)...)
	} else {
		adapters = append(adapters, "")
	}
	return strings.Join(adapters, ".")
}

// AdapterHash is the MD5 of the adapter string, or the wine marker.
func (h *ClientHash) AdapterHash() string {
	if h.wine() {
		return wineMarker
	}
	return md5Hex(h.AdapterString())
}

func (h *ClientHash) uninstallID() string {
	if h.UninstallID != "" {
		return h.UninstallID
	}
	return md5Hex("unknown")
}

func (h *ClientHash) diskSignature() string {
	if h.DiskSignature != "" {
		return h.DiskSignature
	}
	return md5Hex("unknown")
}

// String renders the colon-separated fingerprint, trailing colon included.
func (h *ClientHash) String() string {
	return fmt.Sprintf(
		"%s:%s:%s:%s:%s:",
		h.ExecutableHash,
		h.AdapterString(),
		h.AdapterHash(),
		h.uninstallID(),
		h.diskSignature(),
	)
}

// ClientInfo is the third login line.
type ClientInfo struct {
	Version string
	Hash    *ClientHash

	UTCOffset     int
	DisplayCity   bool
	FriendOnlyDMs bool
}

// NewClientInfo builds the login line for the given version, deriving the
// UTC offset from the host timezone.
func NewClientInfo(version string, hash *ClientHash) *ClientInfo {
	_, offsetSeconds := time.Now().Zone()
	return &ClientInfo{
		Version:   version,
		Hash:      hash,
		UTCOffset: int(math.Round(float64(offsetSeconds) / 3600)),
	}
}

func boolDigit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// String renders version|utc_offset|display_city|client_hash|friend_dms.
func (c *ClientInfo) String() string {
	return fmt.Sprintf(
		"%s|%d|%s|%s|%s",
		c.Version,
		c.UTCOffset,
		boolDigit(c.DisplayCity),
		c.Hash,
		boolDigit(c.FriendOnlyDMs),
	)
}
