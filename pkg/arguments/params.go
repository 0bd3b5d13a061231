// SPDX-License-Identifier: MPL-2.0

package arguments

// Param is one named caller value. Params are rendered in the order given.
type Param struct {
	Name  string
	Value any
}

// P builds a Param for any registered name.
func P(name string, value any) Param { return Param{Name: name, Value: value} }

// Destination sets the destination path joined to the source token.
func Destination(path string) Param { return Param{Name: DestinationName, Value: path} }

// Style sets the output style.
func Style(name string) Param { return Param{Name: StyleName, Value: name} }

// LoadPaths adds import search paths.
func LoadPaths(paths ...string) Param { return Param{Name: LoadPathsName, Value: paths} }

// Indented enables or disables the indented syntax.
func Indented(enabled bool) Param { return Param{Name: IndentedName, Value: enabled} }

// SourceMap enables or disables source map generation.
func SourceMap(enabled bool) Param { return Param{Name: SourceMapName, Value: enabled} }
