// Package config loads and validates edsmover configuration.
//
// The primary format is the plain key=value paths.txt file with the three
// required keys src_path, target_path, and check_interval. A file ending in
// .toml is decoded with the same keys plus optional pattern and logging
// settings. The required keys never receive defaults: a missing or malformed
// value is always an error and the daemon must not start.
package config
