package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"

	appDirname = "sweep"
)

var (
	SWEEP_CONFIG_PATH string

	SWEEP_LOG_PATH string

	// SWEEP_DATA_DIR holds the durable key-value storage (trash set)
	SWEEP_DATA_DIR string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	SWEEP_CONFIG_PATH = os.Getenv("SWEEP_CONFIG_PATH")
	if SWEEP_CONFIG_PATH == "" {
		SWEEP_CONFIG_PATH = filepath.Join(configHome(), appDirname, "config.yaml")
	}

	SWEEP_DATA_DIR = os.Getenv("SWEEP_DATA_DIR")
	if SWEEP_DATA_DIR == "" {
		SWEEP_DATA_DIR = filepath.Join(dataHome(), appDirname)
	}

	SWEEP_LOG_PATH = os.Getenv("SWEEP_LOG_PATH")
	if SWEEP_LOG_PATH == "" {
		SWEEP_LOG_PATH = filepath.Join(SWEEP_DATA_DIR, "debug.log")
	}
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), defaultXDGConfigDirname)
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), defaultXDGDataDirname)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
