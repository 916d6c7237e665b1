// Package version holds the driver build version reported in the hello
// handshake and the CLI.
package version

// Version is the driver version string. Overridden at release time via
// -ldflags "-X github.com/supexhq/supex-go/internal/version.Version=...".
var Version = "0.4.0"
