package common

import "fmt"

// Version is stamped at build time via -ldflags; see cmd/dwm.
var Version = "0.1.0-dev"

const Name = "dwm"

// Summary mirrors the one-line identifier the teacher logs at startup
// (common.Build.Summary in cortile), used here for the -v flag output.
func Summary() string {
	return fmt.Sprintf("%s-%s", Name, Version)
}
