//go:build !js

package glimpse

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/profile"
)

type stopper interface {
	Stop()
}

type nopStopper struct{}

func (nopStopper) Stop() {}

// startProfile starts profiling if requested by the GLIMPSE_PROFILE environment variable.
func startProfile() stopper {
	mode := strings.ToLower(os.Getenv("GLIMPSE_PROFILE"))

	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)

	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)

	case "":
		return nopStopper{}

	default:
		slog.Warn("Unknown profile mode", slog.String("mode", mode))
		return nopStopper{}
	}
}
