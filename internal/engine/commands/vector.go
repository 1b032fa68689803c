// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
)

// VectorFunctions returns the vector natives.
func VectorFunctions() map[string]lisp.Native {
	return map[string]lisp.Native{
		"make-vec":  makeVec,
		"vec":       vec,
		"vec-nth":   vecNth,
		"vec-pop!":  vecPop,
		"vec-push!": vecPush,
		"vec-set!":  vecSet,
		"vec-slice": vecSlice,
	}
}

func vectorArg(name string, x lisp.Expression) (*lisp.Vector, error) {
	v, ok := x.Value().(*lisp.Vector)
	if !ok {
		return nil, mismatch(name, "a vector", x)
	}

	return v, nil
}

func index(name string, x lisp.Expression, n int) (int, error) {
	i, err := integer(name, x)
	if err != nil {
		return 0, err
	}

	if i < 0 || i >= int64(n) {
		return 0, lisp.Errorf(lisp.TypeMismatch, "%s: index %d out of range", name, i)
	}

	return int(i), nil
}

func vec(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	return e.Vector(append([]lisp.Expression{}, args...)), nil
}

func makeVec(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("make-vec", args, 0, 2)
	if err != nil {
		return e.Nil(), err
	}

	if len(v) == 0 {
		return e.Vector(nil), nil
	}

	n, err := integer("make-vec", v[0])
	if err != nil {
		return e.Nil(), err
	}

	if n < 0 {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "make-vec: capacity must not be negative")
	}

	fill := e.Nil()
	if len(v) == 2 {
		fill = v[1]
	}

	xs := make([]lisp.Expression, n)
	for i := range xs {
		xs[i] = fill
	}

	return e.Vector(xs), nil
}

func vecNth(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("vec-nth", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	vector, err := vectorArg("vec-nth", v[0])
	if err != nil {
		return e.Nil(), err
	}

	i, err := index("vec-nth", v[1], len(vector.Items))
	if err != nil {
		return e.Nil(), err
	}

	return vector.Items[i], nil
}

func vecSet(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("vec-set!", args, 3, 3)
	if err != nil {
		return e.Nil(), err
	}

	vector, err := vectorArg("vec-set!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	i, err := index("vec-set!", v[1], len(vector.Items))
	if err != nil {
		return e.Nil(), err
	}

	vector.Items[i] = v[2]

	return v[0], nil
}

func vecPush(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("vec-push!", args, 2, 2)
	if err != nil {
		return e.Nil(), err
	}

	vector, err := vectorArg("vec-push!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	vector.Items = append(vector.Items, v[1])

	return v[0], nil
}

func vecPop(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("vec-pop!", args, 1, 1)
	if err != nil {
		return e.Nil(), err
	}

	vector, err := vectorArg("vec-pop!", v[0])
	if err != nil {
		return e.Nil(), err
	}

	n := len(vector.Items)
	if n == 0 {
		return e.Nil(), nil
	}

	x := vector.Items[n-1]
	vector.Items = vector.Items[:n-1]

	return x, nil
}

func vecSlice(e *lisp.Env, args []lisp.Expression) (lisp.Expression, error) {
	v, err := check("vec-slice", args, 2, 3)
	if err != nil {
		return e.Nil(), err
	}

	vector, err := vectorArg("vec-slice", v[0])
	if err != nil {
		return e.Nil(), err
	}

	n := len(vector.Items)

	start, err := index("vec-slice", v[1], n+1)
	if err != nil {
		return e.Nil(), err
	}

	end := n

	if len(v) == 3 {
		end, err = index("vec-slice", v[2], n+1)
		if err != nil {
			return e.Nil(), err
		}
	}

	if end < start {
		return e.Nil(), lisp.Errorf(lisp.TypeMismatch, "vec-slice: end before start")
	}

	return e.Vector(append([]lisp.Expression{}, vector.Items[start:end]...)), nil
}
