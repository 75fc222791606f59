package app

// Version is the manubot release, set at build time with
// -ldflags "-X github.com/manubot/manubot/internal/app.Version=...".
var Version = "dev"
