// Released under an MIT license. See LICENSE.

// Package lisp provides lish's object model, environment and evaluator.
package lisp

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/michaelmacinnis/lish/internal/common/struct/heap"
	"github.com/michaelmacinnis/lish/internal/common/struct/interner"
	"github.com/michaelmacinnis/lish/internal/common/struct/loc"
)

// FormType restricts what may be evaluated.
type FormType int

// Form restrictions.
const (
	Any FormType = iota
	FormOnly
	ExternalOnly
)

// Launcher starts and waits for external programs.
type Launcher interface {
	Launch(argv []string, background bool) (int, error)
	Wait(pid int) (int, error)
}

// Reader turns source text into expressions.
type Reader func(name, text string) ([]Expression, error)

// Config holds the settings for a new Env.
type Config struct {
	Launcher Launcher
	Loose    bool
	MaxDepth int
	Stderr   io.Writer
	Stdin    io.Reader
	Stdout   io.Writer
}

// DefaultMaxDepth bounds nested evaluation when Config.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Env is the state of one interpreter.
type Env struct {
	// Interrupted is set asynchronously and polled between builtin calls.
	Interrupted atomic.Bool

	background   bool
	collect      bool
	depth        int
	dynamic      map[string]*Reference
	exit         *int
	form         FormType
	gensym       int
	heap         *heap.T
	interner     *interner.T
	launcher     Launcher
	lazy         bool
	loose        bool
	maxDepth     int
	meta         *loc.T
	namespaces   map[string]*Scope
	reader       Reader
	root         *Scope
	scopes       []*Scope
	stack        []Expression
	stackOnError bool

	nilExp  Expression
	trueExp Expression
}

type env = Env

// New creates an Env with a root scope holding the standard streams.
func New(cfg Config) *Env {
	e := &Env{
		dynamic:    map[string]*Reference{},
		heap:       heap.New(),
		interner:   interner.New(),
		launcher:   cfg.Launcher,
		lazy:       true,
		loose:      cfg.Loose,
		maxDepth:   cfg.MaxDepth,
		namespaces: map[string]*Scope{},
	}

	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}

	e.nilExp = e.rooted(Nil{})
	e.trueExp = e.rooted(True{})

	e.root = &Scope{data: map[string]*Reference{}, name: "root"}
	e.namespaces["root"] = e.root
	e.scopes = []*Scope{e.root}

	stdin, stdout, stderr := cfg.Stdin, cfg.Stdout, cfg.Stderr
	if stdin == nil {
		stdin = os.Stdin
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	e.bind(e.root, "*ns*", e.Str("root"), "")
	e.bind(e.root, "*stdin*", e.Alloc(NewReader(Stdin, stdin)), "")
	e.bind(e.root, "*stdout*", e.Alloc(NewWriter(Stdout, stdout)), "")
	e.bind(e.root, "*stderr*", e.Alloc(NewWriter(Stderr, stderr)), "")

	e.registerCore()

	return e
}

// Allocation.

// Alloc stores v in the heap and returns an unrooted expression.
func (e *env) Alloc(v Value) Expression {
	return Expression{heap: e.heap, h: e.heap.Insert(&object{value: v})}
}

// AllocAt is Alloc with source location metadata.
func (e *env) AllocAt(v Value, m *loc.T) Expression {
	return Expression{heap: e.heap, h: e.heap.Insert(&object{meta: m, value: v})}
}

// Bool returns t for true and nil for false.
func (e *env) Bool(b bool) Expression {
	if b {
		return e.trueExp
	}

	return e.nilExp
}

// Char allocates a character.
func (e *env) Char(r rune) Expression {
	return e.Alloc(Char(r))
}

// Cons allocates a pair.
func (e *env) Cons(head, tail Expression) Expression {
	return e.Alloc(Pair{Head: head, Tail: tail})
}

// Float allocates a float.
func (e *env) Float(f float64) Expression {
	return e.Alloc(Float(f))
}

// Int allocates an integer.
func (e *env) Int(i int64) Expression {
	return e.Alloc(Int(i))
}

// List allocates a proper list of xs.
func (e *env) List(xs ...Expression) Expression {
	return e.ListTail(xs, e.nilExp)
}

// ListTail allocates a list of xs terminated by tail.
func (e *env) ListTail(xs []Expression, tail Expression) Expression {
	for i := len(xs) - 1; i >= 0; i-- {
		tail = e.Cons(xs[i], tail)
	}

	return tail
}

// Nil returns the shared nil expression.
func (e *env) Nil() Expression {
	return e.nilExp
}

// Str allocates a string.
func (e *env) Str(s string) Expression {
	return e.Alloc(String(s))
}

// Sym allocates an interned symbol.
func (e *env) Sym(s string) Expression {
	return e.Alloc(Symbol(e.interner.Intern(s)))
}

// True returns the shared true expression.
func (e *env) True() Expression {
	return e.trueExp
}

// Vector allocates a vector holding xs.
func (e *env) Vector(xs []Expression) Expression {
	return e.Alloc(&Vector{Items: xs})
}

// Heap management.

// Collect reclaims everything unreachable from the environment and from
// explicitly rooted expressions. It must not run during evaluation.
func (e *env) Collect() int {
	e.collect = false

	return e.heap.Collect(e.trace)
}

// Collected returns the total number of objects reclaimed so far.
func (e *env) Collected() int {
	return e.heap.Collected()
}

// Interner returns the symbol table.
func (e *env) Interner() *interner.T {
	return e.interner
}

// Live returns the number of objects in the heap.
func (e *env) Live() int {
	return e.heap.Live()
}

// RequestCollect asks for a collection at the next safe point.
func (e *env) RequestCollect() {
	e.collect = true
}

// CollectRequested reports whether a collection has been requested.
func (e *env) CollectRequested() bool {
	return e.collect
}

// Root keeps x alive until a matching Unroot.
func (e *env) Root(x Expression) {
	_ = e.heap.Root(x.h)
}

// Unroot releases a Root.
func (e *env) Unroot(x Expression) {
	_ = e.heap.Unroot(x.h)
}

func (e *env) rooted(v Value) Expression {
	return Expression{heap: e.heap, h: e.heap.InsertRooted(&object{value: v})}
}

func (e *env) trace(t *heap.Tracer) {
	for _, s := range e.scopes {
		s.Trace(t)
	}

	for _, s := range e.namespaces {
		s.Trace(t)
	}

	for _, r := range e.dynamic {
		t.Mark(r.Exp.h)
	}

	for _, x := range e.stack {
		t.Mark(x.h)
	}
}

// Scope resolution.

// Assign overwrites an existing binding for key. A dynamic binding takes
// precedence over a lexical one.
func (e *env) Assign(key string, x Expression, doc string) error {
	r, ok := e.dynamic[key]
	if !ok {
		r, ok = e.lookup(key)
	}

	if !ok {
		return Errorf(Unbound, "set's first form must evaluate to an existing symbol")
	}

	r.Exp = x
	if doc != "" {
		r.Doc = doc
	}

	return nil
}

// Define binds key in the current scope or, for ns::key, in the
// enclosing namespace scope with that name.
func (e *env) Define(key string, x Expression, doc string) error {
	ns, k, ok := strings.Cut(key, "::")
	if !ok {
		e.bind(e.Scope(), key, x, doc)

		return nil
	}

	if ns == "ns" {
		ns = e.Namespace()
	}

	for s := e.Scope(); s != nil; s = s.outer {
		if s.name == ns {
			e.bind(s, k, x, doc)

			return nil
		}
	}

	return Errorf(Namespace, "def namespaced symbol %s not valid or namespace not a parent namespace", key)
}

// Dyn binds key to x in the dynamic scope for the extent of body.
// The previous state is restored however body exits.
func (e *env) Dyn(key string, x Expression, body func() (Expression, error)) (Expression, error) {
	saved, had := e.dynamic[key]

	defer func() {
		if had {
			e.dynamic[key] = saved
		} else {
			delete(e.dynamic, key)
		}
	}()

	e.dynamic[key] = &Reference{Exp: x, Namespace: e.Namespace()}

	return body()
}

// Namespace returns the name of the current namespace.
func (e *env) Namespace() string {
	return e.Scope().Namespace()
}

// Resolve finds the binding for key. Keys beginning with $ or : never
// resolve. Dynamic bindings win, then ns::key in that namespace alone,
// then the lexical chain from the current scope.
func (e *env) Resolve(key string) (*Reference, bool) {
	if strings.HasPrefix(key, "$") || strings.HasPrefix(key, ":") {
		return nil, false
	}

	if r, ok := e.dynamic[key]; ok {
		return r, true
	}

	return e.lookup(key)
}

// RootScope returns the global root scope.
func (e *env) RootScope() *Scope {
	return e.root
}

// Scope returns the current scope.
func (e *env) Scope() *Scope {
	return e.scopes[len(e.scopes)-1]
}

// Undefine removes key from the current scope.
func (e *env) Undefine(key string) error {
	if !e.Scope().Remove(key) {
		return Errorf(Unbound,
			"undef: symbol %s not defined in current scope (can only undef symbols in current scope)", key)
	}

	return nil
}

func (e *env) bind(s *Scope, key string, x Expression, doc string) {
	s.Set(e.interner.Intern(key), &Reference{Doc: doc, Exp: x, Namespace: s.Namespace()})
}

func (e *env) lookup(key string) (*Reference, bool) {
	if ns, k, ok := strings.Cut(key, "::"); ok {
		if ns == "ns" {
			ns = e.Namespace()
		}

		s, ok := e.namespaces[ns]
		if !ok {
			return nil, false
		}

		return s.Get(k)
	}

	r, _ := e.Scope().Lookup(key)

	return r, r != nil
}

func (e *env) pop() {
	e.scopes[len(e.scopes)-1] = nil
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *env) push(s *Scope) {
	e.scopes = append(e.scopes, s)
}

// Within evaluates body with s as the current scope.
func (e *env) Within(s *Scope, body func() (Expression, error)) (Expression, error) {
	e.push(s)
	defer e.pop()

	return body()
}

// Namespaces.

// NsCreate creates and enters a new namespace.
func (e *env) NsCreate(name string) error {
	if e.Scope().name == "" {
		return Errorf(Namespace, "ns-create can only create a namespace when not in a lexical scope")
	}

	if _, ok := e.namespaces[name]; ok {
		return Errorf(Namespace, "Namespace %s already exists!", name)
	}

	s := &Scope{data: map[string]*Reference{}, name: name, outer: e.root}
	e.bind(s, "*ns*", e.Str(name), "")

	e.namespaces[name] = s
	e.push(s)

	return nil
}

// NsEnter makes an existing namespace current.
func (e *env) NsEnter(name string) error {
	if e.Scope().name == "" {
		return Errorf(Namespace, "ns-enter can only enter a namespace when not in a lexical scope")
	}

	s, ok := e.namespaces[name]
	if !ok {
		return Errorf(Namespace, "Error, namespace %s does not exist!", name)
	}

	e.push(s)

	return nil
}

// NsExists returns true if a namespace called name exists.
func (e *env) NsExists(name string) bool {
	_, ok := e.namespaces[name]

	return ok
}

// NsList returns the names of all namespaces.
func (e *env) NsList() []string {
	names := make([]string, 0, len(e.namespaces))
	for name := range e.namespaces {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NsPop leaves the current namespace.
func (e *env) NsPop() error {
	if len(e.scopes) < 2 {
		return Errorf(Namespace, "ns-pop: no more namespaces")
	}

	top := e.Scope()
	if top.name == "" {
		return Errorf(Namespace,
			"ns-pop: can only be used when not in a lexical scope (current scope must be a namespace)")
	}

	e.pop()

	if e.Scope().name == "" {
		e.push(top)

		return Errorf(Namespace, "ns-pop: outer scope must be a namespace")
	}

	return nil
}

// NsScope returns the scope for a namespace.
func (e *env) NsScope(name string) (*Scope, bool) {
	s, ok := e.namespaces[name]

	return s, ok
}

// Modes.

// Background reports whether external programs run without waiting.
func (e *env) Background() bool {
	return e.background
}

// Form returns the current form restriction.
func (e *env) Form() FormType {
	return e.form
}

// Loose reports whether unbound symbols evaluate to their names.
func (e *env) Loose() bool {
	return e.loose
}

// WithBackground evaluates body with background mode set to b.
func (e *env) WithBackground(b bool, body func() (Expression, error)) (Expression, error) {
	saved := e.background
	defer func() { e.background = saved }()

	e.background = b

	return body()
}

// WithForm evaluates body under form restriction f.
func (e *env) WithForm(f FormType, body func() (Expression, error)) (Expression, error) {
	saved := e.form
	defer func() { e.form = saved }()

	e.form = f

	return body()
}

// WithLazy evaluates body with deferred application enabled or disabled.
func (e *env) WithLazy(b bool, body func() (Expression, error)) (Expression, error) {
	saved := e.lazy
	defer func() { e.lazy = saved }()

	e.lazy = b

	return body()
}

// WithLoose evaluates body with loose symbol mode set to b.
func (e *env) WithLoose(b bool, body func() (Expression, error)) (Expression, error) {
	saved := e.loose
	defer func() { e.loose = saved }()

	e.loose = b

	return body()
}

// Miscellaneous state.

// Exit records a request to exit with code.
func (e *env) Exit(code int) {
	e.exit = &code
}

// ExitCode returns the requested exit code, if any.
func (e *env) ExitCode() (int, bool) {
	if e.exit == nil {
		return 0, false
	}

	return *e.exit, true
}

// Gensym returns a fresh symbol.
func (e *env) Gensym() Expression {
	e.gensym++

	return e.Sym("gs@@" + strconv.Itoa(e.gensym))
}

// Launcher returns the process launcher, if any.
func (e *env) Launcher() Launcher {
	return e.launcher
}

// Read parses text using the configured reader.
func (e *env) Read(name, text string) ([]Expression, error) {
	if e.reader == nil {
		return nil, Errorf(HostIO, "no reader configured")
	}

	return e.reader(name, text)
}

// SetReader configures how text is parsed.
func (e *env) SetReader(r Reader) {
	e.reader = r
}

// SetStackOnError controls whether errors capture the evaluation stack.
func (e *env) SetStackOnError(b bool) {
	e.stackOnError = b
}

// StackOnError reports whether errors capture the evaluation stack.
func (e *env) StackOnError() bool {
	return e.stackOnError
}

// Stream returns the File bound to name (*stdout*, *stderr* or *stdin*).
func (e *env) Stream(name string) (*File, error) {
	r, ok := e.Resolve(name)
	if !ok {
		return nil, Errorf(Unbound, "%s is not bound", name)
	}

	f, ok := r.Exp.Value().(*File)
	if !ok {
		return nil, Errorf(TypeMismatch, "%s is not a file", name)
	}

	return f, nil
}
