// SPDX-License-Identifier: MPL-2.0

// Command flechette compiles Sass stylesheets with the dart-sass executable.
package main

import cmd "github.com/flechette-insolente/flechette/cmd/flechette"

func main() {
	cmd.Execute()
}
