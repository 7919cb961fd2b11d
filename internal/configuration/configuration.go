package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Config is the principal structure holding the process configuration.
type Config struct {
	DatabasePath  string
	LogDir        string
	Escalate      string
	WaitMax       time.Duration
	SSHUser       string
	SSHPort       int
	SSHKnownHosts string
	SSHInsecure   bool
	SSHTimeout    time.Duration
}

// Handler is the principal implementation for the configuration services.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads generic Unix-type configuration files into a map.
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

// Load reads the given configuration file into a [Config]. A configuration
// file that does not exist results in the defaults, any other read failure is
// returned. Unset or malformed keys fall back to their defaults.
func (c *Handler) Load(filename string) (*Config, error) {
	envMap, err := c.ReadGeneric(filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("(config-load) failed to read %s: %w", filename, err)
		}
		envMap = map[string]string{}
	}

	cfg := &Config{
		DatabasePath:  c.MapKeyToStringOr(envMap, KeyDatabase, defaultDatabase),
		LogDir:        c.MapKeyToStringOr(envMap, KeyLogDir, defaultLogDir),
		Escalate:      c.MapKeyToStringOr(envMap, KeyEscalate, defaultEscalate),
		SSHUser:       c.MapKeyToStringOr(envMap, KeySSHUser, defaultSSHUser),
		SSHKnownHosts: c.MapKeyToString(envMap, KeySSHKnownHosts),
		SSHInsecure:   c.MapKeyToBool(envMap, KeySSHInsecure),
		SSHPort:       defaultSSHPort,
		SSHTimeout:    defaultSSHTimeout,
	}

	if port := c.MapKeyToInt(envMap, KeySSHPort); port > 0 {
		cfg.SSHPort = port
	}

	if secs := c.MapKeyToInt64(envMap, KeySSHTimeoutSeconds); secs > 0 {
		cfg.SSHTimeout = time.Duration(secs) * time.Second
	}

	if secs := c.MapKeyToInt64(envMap, KeyWaitMaxSeconds); secs > 0 {
		cfg.WaitMax = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

// MapKeyToString returns the value of a key, or an empty string.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return strings.TrimSpace(value)
	}

	return ""
}

// MapKeyToStringOr returns the value of a key, or fallback if it is unset or
// empty.
func (c *Handler) MapKeyToStringOr(envMap map[string]string, key string, fallback string) string {
	if value := c.MapKeyToString(envMap, key); value != "" {
		return value
	}

	return fallback
}

// MapKeyToInt returns the value of a key as int, or -1.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToInt64 returns the value of a key as int64, or -1.
func (c *Handler) MapKeyToInt64(envMap map[string]string, key string) int64 {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToBool returns the value of a key as bool, or false.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string) bool {
	value, err := strconv.ParseBool(c.MapKeyToString(envMap, key))
	if err != nil {
		return false
	}

	return value
}
