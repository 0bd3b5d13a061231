// SPDX-License-Identifier: MPL-2.0

package platform

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// System names used by dart-sass release archives.
const (
	SystemLinux   = "linux"
	SystemMacOS   = "macos"
	SystemWindows = "windows"
)

// Machine names used by dart-sass release archives.
const (
	MachineX64   = "x64"
	MachineIA32  = "ia32"
	MachineARM64 = "arm64"
	MachineARM   = "arm"
)

// normalizeSystem maps a GOOS value to its release system name.
func normalizeSystem(goos string) string {
	if goos == Darwin {
		return SystemMacOS
	}
	return goos
}

// normalizeMachine maps a GOARCH value to its release machine name.
// Unknown architectures are returned unchanged.
func normalizeMachine(goarch string) string {
	switch goarch {
	case "amd64":
		return MachineX64
	case "386":
		return MachineIA32
	case "arm64":
		return MachineARM64
	case "arm":
		return MachineARM
	default:
		return goarch
	}
}
