package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const defaultPort = 5000

// fileConfig mirrors the optional newsboard.toml file. Environment
// variables always win over file values.
type fileConfig struct {
	Listen    string `toml:"listen"`
	Port      int    `toml:"port"`
	DBFolder  string `toml:"dbFolder"`
	LogFolder string `toml:"logFolder"`
	Secret    string `toml:"secret"`
}

var fileCfg fileConfig

// LoadFile reads the optional TOML config file. A missing file is not an
// error, a malformed one is.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &fileCfg)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("NB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("NB_DEBUG") == "true"
}

// GetListen returns the bind address. Empty means all interfaces.
func GetListen() string {
	listen := os.Getenv("NB_LISTEN")
	if listen == "" {
		listen = fileCfg.Listen
	}
	return listen
}

// GetPort returns the web server port, taken from the PORT environment
// variable, then the config file, defaulting to 5000.
func GetPort() int {
	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			return port
		}
	}
	if fileCfg.Port > 0 {
		return fileCfg.Port
	}
	return defaultPort
}

// GetSessionSecret returns the key used to sign session cookies, or ""
// when none is configured (a random one is generated at startup).
func GetSessionSecret() string {
	secret := os.Getenv("NB_SESSION_SECRET")
	if secret == "" {
		secret = fileCfg.Secret
	}
	return secret
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("NB_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = fileCfg.DBFolder
	}
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("NB_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = fileCfg.LogFolder
	}
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}
