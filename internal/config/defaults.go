package config

const (
	// DefaultPath is where the daemon looks for its configuration when no
	// --config flag is given, relative to the working directory.
	DefaultPath = "paths.txt"

	// DefaultPattern selects files ending in .eds.
	DefaultPattern = "*.eds"

	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

const (
	KeySourcePath    = "src_path"
	KeyTargetPath    = "target_path"
	KeyCheckInterval = "check_interval"
)

// RequiredKeys lists the keys every configuration must carry.
var RequiredKeys = []string{KeySourcePath, KeyTargetPath, KeyCheckInterval}
