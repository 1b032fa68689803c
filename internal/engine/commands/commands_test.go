package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelmacinnis/lish/internal/engine"
	"github.com/michaelmacinnis/lish/internal/engine/lisp"
	"github.com/stretchr/testify/require"
)

type harness struct {
	*testing.T

	engine *engine.T
	out    *bytes.Buffer
}

func setup(t *testing.T) *harness {
	t.Helper()

	out := &bytes.Buffer{}

	e, err := engine.New(engine.Options{Stderr: &bytes.Buffer{}, Stdout: out})
	require.NoError(t, err)

	return &harness{T: t, engine: e, out: out}
}

// expect evaluates each input and compares the printed result.
func (h *harness) expect(tests ...string) {
	h.Helper()

	for i := 0; i < len(tests); i += 2 {
		r, err := h.engine.EvalString("test", tests[i])
		require.NoError(h, err, tests[i])
		require.Equal(h, tests[i+1], r.String(), tests[i])
	}
}

func (h *harness) fails(s string, k lisp.Kind) {
	h.Helper()

	_, err := h.engine.EvalString("test", s)

	kind, ok := lisp.KindOf(err)
	require.True(h, ok, s)
	require.Equal(h, k, kind, s)
}

func TestArithmetic(t *testing.T) {
	h := setup(t)

	h.expect(
		"(+)", "0",
		"(+ 1 2 3)", "6",
		"(+ 1 2.5)", "3.5",
		"(- 5)", "-5",
		"(- 10 3 2)", "5",
		"(* 2 3 4)", "24",
		"(/ 7 2)", "3",
		"(/ 7.0 2)", "3.5",
		"(% 7 3)", "1",
		"(str->int \"42\")", "42",
		"(str->float \"1.5\")", "1.5",
	)

	h.fails("(/ 1 0)", lisp.TypeMismatch)
	h.fails("(+ 1 \"a\")", lisp.TypeMismatch)
	h.fails("(-)", lisp.Arity)
	h.fails("(str->int \"x\")", lisp.TypeMismatch)
}

func TestRelational(t *testing.T) {
	h := setup(t)

	h.expect(
		"(< 1 2 3)", "t",
		"(< 1 3 2)", "nil",
		"(= 1 1.0)", "t",
		"(>= 3 3 1)", "t",
		"(< \"abc\" \"abd\")", "t",
		"(eq? 'a 'a)", "t",
		"(eq? \"s\" \"s\")", "t",
		"(eq? (list 1) (list 1))", "nil",
		"(equal? (list 1 #(2 3)) (list 1 #(2 3)))", "t",
		"(equal? (list 1) (list 2))", "nil",
	)

	h.fails("(< 1 \"a\")", lisp.TypeMismatch)
}

func TestPredicates(t *testing.T) {
	h := setup(t)

	h.expect(
		"(nil? nil)", "t",
		"(nil? '(1))", "nil",
		"(int? 1)", "t",
		"(float? 1)", "nil",
		"(string? \"s\")", "t",
		"(symbol? 'a)", "t",
		"(pair? '(1))", "t",
		"(list? nil)", "t",
		"(vector? #(1))", "t",
		"(hash? (make-hash))", "t",
		"(lambda? (fn () 1))", "t",
		"(macro? defn)", "t",
		"(char? #\\a)", "t",
		"(keyword? :k)", "t",
		"(true? t)", "t",
		"(file? *stdout*)", "t",
	)
}

func TestTypeAndLength(t *testing.T) {
	h := setup(t)

	h.expect(
		"(type 1)", `"Int"`,
		"(type 1.5)", `"Float"`,
		"(type 'a)", `"Symbol"`,
		"(type \"s\")", `"String"`,
		"(type (str-buf \"s\"))", `"StringBuf"`,
		"(type #(1))", `"Vector"`,
		"(type '(1))", `"Pair"`,
		"(type nil)", `"Nil"`,
		"(type t)", `"True"`,
		"(type (fn () 1))", `"Lambda"`,
		"(type defn)", `"Macro"`,
		"(type car)", `"Function"`,
		"(type if)", `"SpecialForm"`,
		"(type *stdin*)", `"File"`,
		"(type (make-hash))", `"HashMap"`,
		"(length nil)", "0",
		"(length '(1 2 3))", "3",
		"(length \"héllo\")", "5",
		"(length #(1 2))", "2",
		"(length 7)", "1",
	)
}

func TestLists(t *testing.T) {
	h := setup(t)

	h.expect(
		"(cons 1 2)", "(1 . 2)",
		"(car '(1 2))", "1",
		"(cdr '(1 2))", "(2)",
		"(cdr nil)", "nil",
		"(first '(1 2))", "1",
		"(rest #(1 2 3))", "#(2 3)",
		"(last '(1 2 3))", "3",
		"(reverse '(1 2 3))", "(3 2 1)",
		"(def 'p (list 1 2)) (xar! p 0) p", "(0 2)",
		"(xdr! p '(9)) p", "(0 9)",
	)

	h.fails("(car 1)", lisp.TypeMismatch)

	h.expect("(def 'c (list 1 2)) (xdr! (cdr c) c) (car (cdr (cdr c)))", "1")
	h.fails("(length c)", lisp.TypeMismatch)
	h.fails("(reverse c)", lisp.TypeMismatch)
	h.fails("(last c)", lisp.TypeMismatch)
}

func TestVectors(t *testing.T) {
	h := setup(t)

	h.expect(
		"(vec 1 2)", "#(1 2)",
		"(make-vec 2 0)", "#(0 0)",
		"(def 'v (vec 1 2 3)) (vec-nth v 1)", "2",
		"(vec-set! v 1 9) v", "#(1 9 3)",
		"(vec-push! v 4) v", "#(1 9 3 4)",
		"(vec-pop! v)", "4",
		"(vec-slice v 1)", "#(9 3)",
		"(vec-slice v 0 1)", "#(1)",
	)

	h.fails("(vec-nth v 10)", lisp.TypeMismatch)
}

func TestHashes(t *testing.T) {
	h := setup(t)

	h.expect(
		"(def 'm (make-hash '((a . 1) (b . 2)))) (hash-get m 'a)", "1",
		"(hash-get m 'z)", "nil",
		"(hash-get m 'z 5)", "5",
		"(hash-set! m 'c 3) (hash-keys m)", "#(a b c)",
		"(hash-haskey m 'b)", "t",
		"(hash-remove! m 'b) (hash-haskey m 'b)", "nil",
		"(hash-clear! m) (length m)", "0",
	)
}

func TestStrings(t *testing.T) {
	h := setup(t)

	h.expect(
		"(str \"a\" 1 'b)", `"a1b"`,
		"(str-upper \"abc\")", `"ABC"`,
		"(str-lower \"ABC\")", `"abc"`,
		"(str-trim \"  x \")", `"x"`,
		"(str-contains \"b\" \"abc\")", "t",
		"(str-replace \"a-b-c\" \"-\" \"+\")", `"a+b+c"`,
		"(str-split \",\" \"a,b\")", `#("a" "b")`,
		"(str-split \"\" \" a  b \")", `#("a" "b")`,
		"(def 'b (str-buf \"x\")) (str-append b \"y\") (sym->str 'q)", `"q"`,
		"b", `"xy"`,
		"(match \"*.go\" \"main.go\")", "t",
		"(sym \"a\" 1)", "a1",
	)
}

func TestFiles(t *testing.T) {
	h := setup(t)

	path := filepath.Join(t.TempDir(), "out.txt")

	h.expect(
		`(def 'f (open "`+path+`" :write)) (write-string f "one\ntwo\n") (close f)`, "nil",
		`(def 'f (open "`+path+`")) (read-line f)`, `"one\n"`,
		"(read-line f)", `"two\n"`,
		"(read-line f)", "nil",
		"(close f) f", "#<CLOSED FILE>",
	)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(b))

	h.expect(`(exists "` + path + `")`, "t")

	h.fails(`(open "`+filepath.Join(t.TempDir(), "absent")+`")`, lisp.HostIO)
}

func TestCore(t *testing.T) {
	h := setup(t)

	t.Setenv("LISH_COMMANDS_TEST", "")

	h.expect(
		"(read \"(a b)\")", "(a b)",
		"(eval (read \"(+ 1 2)\"))", "3",
		`(export 'LISH_COMMANDS_TEST "yes") $LISH_COMMANDS_TEST`, `"yes"`,
		`(get-env "LISH_COMMANDS_TEST")`, `"yes"`,
		`(unexport 'LISH_COMMANDS_TEST) $LISH_COMMANDS_TEST`, `""`,
		"(version)", `"0.1.0"`,
		"(length (gc-stats))", "2",
	)

	h.fails("(jobs)", lisp.HostIO)
}
