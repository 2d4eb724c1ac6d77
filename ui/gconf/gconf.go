package gconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"omweso/src/base"
	"omweso/src/engine"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	cfgFile   = "omweso/config.json"
	localFile = "omweso.json"
)

type Config struct {
	Size       int    `json:"size"`        // pits per row
	Pool       int    `json:"seeds"`       // seeds per player
	Player0    string `json:"player0"`     // human/random/slow/greedy/...
	Player1    string `json:"player1"`     //
	ExternPath string `json:"extern_path"` // player process for "extern"
	Level      int    `json:"level"`       // greedy search level 1..5
	MinDelayMs int    `json:"min_delay_ms"`
	Theme      string `json:"theme"` // light/dark
	WindowH    int    `json:"window_h"`
	WindowW    int    `json:"window_w"`
	Debug      bool   `json:"debug"`

	path string
}

func DefaultConfig() Config {
	return Config{
		Size:       base.DefaultSize,
		Pool:       base.DefaultPool,
		Player0:    "human",
		Player1:    "greedy",
		Level:      int(engine.LevelThree),
		MinDelayMs: 400,
		Theme:      "light",
		WindowH:    420,
		WindowW:    760,
	}
}

// Load reads the first config found in the XDG config dirs, then
// ./omweso.json. No file at all gives the defaults.
func Load() (*Config, error) {
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		path = localFile
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	c := DefaultConfig()
	c.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &c, nil
	} else if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("error decode config %s: %w", path, err)
	}
	correctableConfig(&c)
	return &c, nil
}

func (c *Config) Path() string { return c.path }

// Save writes to the file the config came from, or to the user's XDG
// config dir.
func (c *Config) Save() error {
	path := c.path
	if path == "" || path == localFile {
		p, err := xdg.ConfigFile(cfgFile)
		if err != nil {
			return err
		}
		path = p
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return err
	}
	c.path = path
	return nil
}

func correctableConfig(c *Config) {
	def := DefaultConfig()
	if c.Size < base.MinSize || c.Size > base.MaxSize {
		c.Size = def.Size
	}
	if c.Pool < 1 {
		c.Pool = def.Pool
	}
	if c.Player0 == "" {
		c.Player0 = def.Player0
	}
	if c.Player1 == "" {
		c.Player1 = def.Player1
	}
	if c.Level < int(engine.LevelOne) || c.Level >= int(engine.LevelInvalid) {
		c.Level = def.Level
	}
	if c.MinDelayMs < 0 {
		c.MinDelayMs = 0
	}
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.WindowH < def.WindowH || c.WindowW < def.WindowW {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
}
