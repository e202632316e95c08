package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-tunable settings for texpeek. Everything has a working
// default so a missing config file is not an error.
type Config struct {
	// Tools points texpeek at the external binaries it shells out to.
	Tools ToolsConfig `toml:"tools"`
	// Serve configures the preview server.
	Serve ServeConfig `toml:"serve"`
	// Render configures one-shot rendering defaults.
	Render RenderConfig `toml:"render"`
	// HistoryPath overrides the location of the render journal database.
	HistoryPath string `toml:"history_path"`
}

type ToolsConfig struct {
	Oiiotool string `toml:"oiiotool"`
	Ktx      string `toml:"ktx"`
}

type ServeConfig struct {
	Listen string `toml:"listen"`
}

type RenderConfig struct {
	Exposure float64 `toml:"exposure"`
	Display  string  `toml:"display"`
	View     string  `toml:"view"`
}

func defaults() *Config {
	return &Config{
		Tools: ToolsConfig{
			Oiiotool: "oiiotool",
			Ktx:      "ktx",
		},
		Serve: ServeConfig{
			Listen: "127.0.0.1:8490",
		},
		Render: RenderConfig{
			Exposure: 0,
		},
	}
}

// Path returns the location of the config file (~/.config/texpeek/config.toml).
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "texpeek", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "texpeek", "config.toml")
}

// Load reads the config file, falling back to defaults when it does not
// exist. Environment variables TEXPEEK_OIIOTOOL and TEXPEEK_KTX take
// precedence over the file so CI and one-off runs can redirect tools.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

func LoadFrom(path string) (*Config, error) {
	out := defaults()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		applyEnv(out)
		return out, nil
	}
	if _, err := toml.DecodeFile(path, out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if out.Tools.Oiiotool == "" {
		out.Tools.Oiiotool = "oiiotool"
	}
	if out.Tools.Ktx == "" {
		out.Tools.Ktx = "ktx"
	}
	if out.Serve.Listen == "" {
		out.Serve.Listen = "127.0.0.1:8490"
	}
	applyEnv(out)
	return out, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("TEXPEEK_OIIOTOOL"); v != "" {
		c.Tools.Oiiotool = v
	}
	if v := os.Getenv("TEXPEEK_KTX"); v != "" {
		c.Tools.Ktx = v
	}
	if v := os.Getenv("TEXPEEK_LISTEN"); v != "" {
		c.Serve.Listen = v
	}
}
