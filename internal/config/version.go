package config

// Version is the labsync binary version.
// Set at build time via: -ldflags "-X github.com/labsyncio/labsync/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
