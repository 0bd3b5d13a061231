// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates configuration data against an embedded CUE
// schema.
//
// Data written as CUE is compiled directly; data decoded from another
// format (TOML) is encoded into CUE first, so both go through the same
// closed definition and report errors the same way:
//
//	<file-path>: <json-path>: <message>
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schemaSource string
//
//	schema, err := cueutil.CompileSchema(schemaSource, "#Config")
//	if err != nil {
//	    return err
//	}
//	values, err := schema.DecodeBytes(data, cueutil.WithFilename("config.cue"))
package cueutil
