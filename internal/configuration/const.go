package configuration

import "time"

const (
	// DefaultConfigFile is the configuration file read when none is given.
	DefaultConfigFile = "/etc/reflectron/reflectron.env"

	// KeyDatabase is the configuration key for the catalog location.
	KeyDatabase = "REFLECTRON_DATABASE"

	// KeyLogDir is the configuration key for the daily log file directory.
	KeyLogDir = "REFLECTRON_LOG_DIR"

	// KeyEscalate is the configuration key for the privilege escalation
	// program that storage commands are wrapped in.
	KeyEscalate = "REFLECTRON_ESCALATE"

	// KeyWaitMaxSeconds is the configuration key for the upper bound of a
	// polling wait. Zero means no bound.
	KeyWaitMaxSeconds = "REFLECTRON_WAIT_MAX_SECONDS"

	// KeySSHUser is the configuration key for the remote login user.
	KeySSHUser = "REFLECTRON_SSH_USER"

	// KeySSHPort is the configuration key for the remote SSH port.
	KeySSHPort = "REFLECTRON_SSH_PORT"

	// KeySSHKnownHosts is the configuration key for the known_hosts file.
	KeySSHKnownHosts = "REFLECTRON_SSH_KNOWN_HOSTS"

	// KeySSHInsecure is the configuration key for skipping host key checks.
	KeySSHInsecure = "REFLECTRON_SSH_INSECURE"

	// KeySSHTimeoutSeconds is the configuration key for the SSH dial timeout.
	KeySSHTimeoutSeconds = "REFLECTRON_SSH_TIMEOUT_SECONDS"

	// EscalateNone disables privilege escalation.
	EscalateNone = "none"

	defaultDatabase   = "/opt/reflectron/database"
	defaultLogDir     = "/var/log/reflectron"
	defaultEscalate   = "pkexec"
	defaultSSHUser    = "root"
	defaultSSHPort    = 22
	defaultSSHTimeout = 30 * time.Second
)
