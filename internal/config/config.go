package config

import (
	"os"
	"path/filepath"
)

// MirrorPath returns the mirror store path from the SLACKGRAPH_MIRROR env
// var, falling back to the XDG data directory.
func MirrorPath() string {
	if env := os.Getenv("SLACKGRAPH_MIRROR"); env != "" {
		return env
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "slackgraph", "mirror.db")
}

// Env returns the runtime environment from SLACKGRAPH_ENV ("production"
// switches logging to the production config), defaulting to "development".
func Env() string {
	if env := os.Getenv("SLACKGRAPH_ENV"); env != "" {
		return env
	}
	return "development"
}
