// Package config loads sqldojo configuration from defaults, an optional
// sqldojo.yaml file, SQLDOJO_ environment variables, and CLI flags.
package config

// UIConfig holds web server settings.
type UIConfig struct {
	Port     int  `koanf:"port"`
	AutoOpen bool `koanf:"auto_open"`
	Watch    bool `koanf:"watch"`
}

// Config is the full runtime configuration.
type Config struct {
	// Database is the path to the DuckDB sample database file.
	Database string `koanf:"database"`

	// BackupDir is the canonical EXPORT DATABASE directory used by reset.
	BackupDir string `koanf:"backup_dir"`

	// SeedsDir holds CSV files for bootstrapping a fresh dataset.
	SeedsDir string `koanf:"seeds_dir"`

	// History is the path to the SQLite query-history store.
	History string `koanf:"history"`

	// AdminPasscode gates the reset button in the UI. Empty leaves the
	// reset control open to everyone.
	AdminPasscode string `koanf:"admin_passcode"`

	UI UIConfig `koanf:"ui"`

	Verbose bool `koanf:"verbose"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"database":   "sample.db",
		"backup_dir": "backup_data",
		"seeds_dir":  "seeds",
		"history":    ".sqldojo/history.db",
		"ui.port":    8765,
		"ui.watch":   true,
	}
}
