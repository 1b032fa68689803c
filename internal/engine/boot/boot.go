// Released under an MIT license. See LICENSE.

// Package boot provides what is necessary for bootstrapping lish.
package boot

import _ "embed" // Blank import required by embed.

//go:embed boot.lisp
var script string //nolint:gochecknoglobals

// Script returns the boot script for lish.
func Script() string {
	return script
}
