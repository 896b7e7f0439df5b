// Package version carries build information injected at link time.
package version

// Build information. Overridden via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)
