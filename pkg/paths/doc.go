// Package paths centralizes the locations iconrules reads and writes.
//
// Directories follow the XDG Base Directory specification through
// github.com/adrg/xdg, each overridable by an environment variable:
//
//   - config: $ICONRULES_CONFIG_DIR, else $XDG_CONFIG_HOME/iconrules
//   - state (log file): $ICONRULES_STATE_DIR, else $XDG_STATE_HOME/iconrules
//
// User supplied paths (vault and icon directories) may start with "~".
package paths
