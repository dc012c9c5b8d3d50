package version

// Version is the build version, overridden at link time via
// -ldflags "-X github.com/livp123/logconf/internal/version.Version=...".
// Version 是构建版本，可在链接时通过 -ldflags 覆盖。
var Version = "dev"
