package version

// Version is set at build time with -ldflags "-X arverify-node/internal/version.Version=...".
var Version = "dev"
