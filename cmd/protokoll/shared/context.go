// Package shared holds the context passed to all CLI commands.
package shared

import "github.com/go-ports/protokoll/internal/service"

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// StartDir is where context discovery begins. Empty means the current
	// working directory.
	StartDir string
	// Marker overrides the marker directory name (default ".protokoll").
	Marker string
	// ConfigName overrides the configuration file name (default "config.yaml").
	ConfigName string
}

// Options maps the CLI flags onto service options.
func (c *Context) Options() service.Options {
	return service.Options{
		StartDir:   c.StartDir,
		MarkerName: c.Marker,
		ConfigName: c.ConfigName,
	}
}
