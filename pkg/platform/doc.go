// SPDX-License-Identifier: MPL-2.0

// Package platform resolves which dart-sass standalone build matches the
// host and where its executable lives inside a vendor directory.
//
// Names follow the dart-sass release archives ("linux-x64", "macos-arm64",
// "windows-ia32", ...) rather than Go's GOOS/GOARCH values.
package platform
