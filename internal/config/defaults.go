package config

import (
	"os"
	"path/filepath"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendValkey = "valkey"
	BackendMemory = "memory"
)

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	homedir, _ := os.UserHomeDir()

	return &Config{
		Storage: Storage{
			Backend: BackendFile,
			Valkey: ValkeyConfig{
				Address: "127.0.0.1:6379",
				Prefix:  "sweep",
			},
		},
		Trash: Trash{
			Key: "trashed_photo_ids",
		},
		Library: Library{
			Root:      filepath.Join(homedir, "Pictures"),
			MediaType: "photo",
			Include: IncludeConfig{
				Period: 0,
			},
			Exclude: ExcludeConfig{
				Files: []string{
					".DS_Store",
				},
				Patterns: []string{},
				Globs:    []string{},
				Size: SizeConfig{
					Min: "",
					Max: "",
				},
			},
		},
		Selection: Selection{
			MaxAttempts: 10,
			Recent:      1,
		},
		UI: UI{
			ConfirmEmpty: true,
			ExitMessage:  "bye!",
			Style: StyleConfig{
				Keep:   "#5FB458", // Green
				Delete: "#FF007F",
				Info:   "#AD58B4", // Purple
			},
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "debug",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
