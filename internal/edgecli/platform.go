package edgecli

import (
	"fmt"
	"runtime"
)

// Platform names an Edge CLI build the way the download server does.
type Platform struct {
	OS   string // windows, linux or macos
	Arch string // x64 or arm64
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// CurrentPlatform returns the Edge CLI platform of the running binary.
func CurrentPlatform() (Platform, error) {
	return PlatformFor(runtime.GOOS, runtime.GOARCH)
}

// PlatformFor maps Go's GOOS and GOARCH names to an Edge CLI platform.
func PlatformFor(goos, goarch string) (Platform, error) {
	var p Platform

	switch goos {
	case "windows":
		p.OS = "windows"
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "illumos":
		// The Linux build is used for every Unix-like system.
		p.OS = "linux"
	case "darwin":
		p.OS = "macos"
	default:
		return Platform{}, fmt.Errorf("unsupported operating system: %s", goos)
	}

	switch goarch {
	case "amd64":
		p.Arch = "x64"
	case "arm64":
		p.Arch = "arm64"
	default:
		return Platform{}, fmt.Errorf("unsupported architecture: %s (64-bit x86 or ARM required)", goarch)
	}

	return p, nil
}

// BinaryName returns the Edge CLI file name for an Edge CLI OS name.
func BinaryName(os string) string {
	if os == "windows" {
		return "edge.exe"
	}
	return "edge"
}
