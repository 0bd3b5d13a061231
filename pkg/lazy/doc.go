// SPDX-License-Identifier: MPL-2.0

// Package lazy provides deferred constructor calls.
//
// A Deferred captures the positional and keyword arguments of a constructor
// without invoking anything. The caller decides later which constructor to
// apply, if any, by resolving the descriptor with a CoerceFunc. This lets
// parameter declarations describe their CLI type (a path, an enumerated
// choice) without importing the flag library that will eventually build it.
//
//	d := lazy.Capture("expanded", "compressed")
//	raw, _ := d.Resolve(nil)          // lazy.Captured{Args: [expanded compressed]}
//	flag, _ := d.Resolve(newEnumFlag) // whatever newEnumFlag returns
package lazy
