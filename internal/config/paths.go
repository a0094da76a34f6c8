package config

import (
	"os"
	"path/filepath"
)

// GetMaintHome returns MAINT_HOME or the ~/.maint default
func GetMaintHome() string {
	maintHome := os.Getenv("MAINT_HOME")
	if maintHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".maint"
		}
		return filepath.Join(homeDir, ".maint")
	}
	return ExpandPath(maintHome)
}

// GetStateDBPath returns $MAINT_HOME/state.db, where sessions are persisted
func GetStateDBPath() string {
	return filepath.Join(GetMaintHome(), "state.db")
}

// GetLocalDBPath returns $MAINT_HOME/local.db, the local backend database
func GetLocalDBPath() string {
	return filepath.Join(GetMaintHome(), "local.db")
}

// GetSettingsPath returns $MAINT_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetMaintHome(), "settings.json")
}

// GetSSHDir returns $MAINT_HOME/ssh, holding the server host key
func GetSSHDir() string {
	return filepath.Join(GetMaintHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
