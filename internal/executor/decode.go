// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// decodeOutput turns captured bytes into UTF-8 text. The encoding is fixed:
// a leading byte order mark is dropped and invalid sequences are replaced,
// so payloads never carry raw bytes.
func decodeOutput(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(text)
}

func decodedPtr(b []byte) *string {
	s := decodeOutput(b)
	return &s
}
