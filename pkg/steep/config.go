package steep

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileConfig represents a steep.toml configuration file. It covers the
// startup options an end user may want to override per project, and
// converts into the equivalent Option list.
type FileConfig struct {
	// FPS is the paint rate, clamped to 1-120. Zero means the default.
	FPS int `toml:"fps,omitempty"`

	// AltScreen starts the program on the alternate screen buffer.
	AltScreen bool `toml:"alt_screen,omitempty"`

	// Mouse selects mouse reporting: "cell", "all", or "" for off.
	Mouse string `toml:"mouse,omitempty"`

	// ReportFocus enables focus/blur reporting.
	ReportFocus bool `toml:"report_focus,omitempty"`

	// BracketedPaste toggles bracketed paste. Unset means on.
	BracketedPaste *bool `toml:"bracketed_paste,omitempty"`
}

// LoadConfig loads a steep.toml file from the given path.
func LoadConfig(path string) (*FileConfig, error) {
	var config FileConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if config.Mouse != "" && config.Mouse != "cell" && config.Mouse != "all" {
		return nil, errors.Errorf("parsing %s: mouse must be \"cell\", \"all\" or unset, got %q", path, config.Mouse)
	}
	return &config, nil
}

// FindConfig searches for a steep.toml file starting from dir and walking
// up to parent directories, stopping at a .git boundary. Returns the path
// and the parsed config, or ("", nil, nil) if not found.
func FindConfig(dir string) (string, *FileConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "steep.toml")
		if _, err := os.Stat(path); err == nil {
			config, err := LoadConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// Options converts the file configuration into Program options.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.FPS != 0 {
		opts = append(opts, WithFPS(c.FPS))
	}
	if c.AltScreen {
		opts = append(opts, WithAltScreen())
	}
	switch c.Mouse {
	case "cell":
		opts = append(opts, WithMouseCellMotion())
	case "all":
		opts = append(opts, WithMouseAllMotion())
	}
	if c.ReportFocus {
		opts = append(opts, WithReportFocus())
	}
	if c.BracketedPaste != nil && !*c.BracketedPaste {
		opts = append(opts, WithoutBracketedPaste())
	}
	return opts
}
