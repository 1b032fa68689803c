// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package commands

import (
	"fmt"

	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"golang.org/x/sys/unix"
)

func umask(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("umask", args, 0, 1)
	if err != nil {
		return e.Nil(), err
	}

	nmask := int64(0)

	if len(v) == 1 {
		nmask, err = integer("umask", v[0])
		if err != nil {
			return e.Nil(), err
		}
	}

	omask := unix.Umask(int(nmask))

	if len(v) == 0 {
		unix.Umask(omask)
	}

	return e.Str(fmt.Sprintf("0o%o", omask)), nil
}
