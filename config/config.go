// Package config defines the statik server's configuration: its on-disk
// TOML shape, defaults, and a read-mostly in-memory Store shared across
// every connection behind a reader-preferred lock.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath is written with default values on startup if the
// caller did not ask for a different path and nothing exists there yet.
const DefaultConfigPath = "./statik.toml"

// General holds process-wide options unrelated to either listener.
type General struct {
	Host     string `toml:"host"`
	LogLevel string `toml:"log_level"`
}

// MC holds options for the primary Minecraft-protocol listener.
type MC struct {
	Port            uint16 `toml:"port"`
	MaxPlayers      int32  `toml:"max_players"`
	HidePlayerCount bool   `toml:"hide_player_count"`
	MOTD            string `toml:"motd"`
	MaxPacketSize   int    `toml:"max_packet_size"`
	Icon            string `toml:"icon"`
	Hidden          bool   `toml:"hidden"`
	DisconnectMsg   string `toml:"disconnect_msg"`
}

// API holds options for the reserved administrative listener.
type API struct {
	Port uint16 `toml:"port"`
}

// Config is the full on-disk shape, matching the [general]/[mc]/[api]
// section layout named in the external interfaces.
type Config struct {
	General General `toml:"general"`
	MC      MC      `toml:"mc"`
	API     API     `toml:"api"`
}

// Default returns the configuration used when no file is present or a
// requested file fails to load.
func Default() Config {
	return Config{
		General: General{
			Host:     "0.0.0.0",
			LogLevel: "info",
		},
		MC: MC{
			Port:            25565,
			MaxPlayers:      20,
			HidePlayerCount: false,
			MOTD:            "A Statik server!",
			MaxPacketSize:   4096,
			Icon:            "",
			Hidden:          false,
			DisconnectMsg:   "{{ username }}, this server is not currently online.",
		},
		API: API{
			Port: 8080,
		},
	}
}

// Load reads and parses a TOML config file at path. Callers that receive
// an error here are expected to fall back to Default() and log a warning,
// per the external-interfaces contract — Load itself never falls back.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault best-effort writes a fresh default config file to path. It
// is not fatal if this fails — the caller logs a warning and continues.
func WriteDefault(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating default config at %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("writing default config to %s: %w", path, err)
	}
	return nil
}

// Store is a read-mostly, reader-preferred-locked holder of a Config
// shared across every Connection. Writes happen only at startup today,
// but the lock keeps the door open for a future hot-reload.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore wraps cfg in a Store.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns a copy of the current configuration. Config contains
// only small scalar and string fields, so copying it is cheap — there is
// no large shared buffer (Config.MC.Icon is only the icon's path; the
// already-base64-encoded icon is held by supervisor.Server and handed to
// each conn.Connection, not stored in Config).
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Replace atomically swaps in a new configuration.
func (s *Store) Replace(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}
