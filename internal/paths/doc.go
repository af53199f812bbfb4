// Package paths resolves the default locations used by catlog.
//
// It wraps github.com/adrg/xdg so that defaults follow the XDG Base Directory
// conventions on Linux and the native locations on macOS and Windows:
//
//	| Purpose  | Location                          |
//	|----------|-----------------------------------|
//	| Config   | <ConfigHome>/catlog/config.yaml   |
//	| Logs     | <StateHome>/catlog/logs/          |
package paths
