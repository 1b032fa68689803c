// Released under an MIT license. See LICENSE.

package lisp

var docs = map[string]string{
	"and":              "Usage: (and form...)\n\nEvaluate forms left to right. Return the first nil result or the last result.",
	"apply":            "Usage: (apply f arg... list)\n\nCall f with args followed by the elements of list.",
	"block":            "Usage: (block name form...)\n\nEvaluate forms. A return-from naming this block exits it early.",
	"bquote":           "Usage: (bquote form)\n\nQuote form, evaluating elements marked with , and splicing those marked with ,@.",
	"command":          "Usage: (command form...)\n\nEvaluate forms treating every call as an external command.",
	"def":              "Usage: (def key [docstring] value)\n\nBind key in the current scope. ns::key binds in an enclosing namespace.",
	"def?":             "Usage: (def? symbol)\n\nReturn t if symbol resolves from the current scope.",
	"doc":              "Usage: (doc symbol)\n\nReturn the formatted documentation for symbol.",
	"doc-raw":          "Usage: (doc-raw symbol)\n\nReturn the documentation string bound with symbol.",
	"dyn":              "Usage: (dyn symbol value form)\n\nEvaluate form with symbol dynamically bound to value.",
	"err":              "Usage: (err message)\n\nRaise an error with message.",
	"error-stack-off":  "Usage: (error-stack-off)\n\nStop capturing the evaluation stack on error.",
	"error-stack-on":   "Usage: (error-stack-on)\n\nCapture the evaluation stack on error.",
	"eval":             "Usage: (eval form)\n\nEvaluate form. A string is read first and each form evaluated.",
	"exit":             "Usage: (exit [code])\n\nExit after the current top-level form.",
	"expand-macro":     "Usage: (expand-macro form)\n\nExpand form until it is no longer a macro call.",
	"expand-macro-all": "Usage: (expand-macro-all form)\n\nExpand every macro call in form.",
	"expand-macro1":    "Usage: (expand-macro1 form)\n\nExpand one level of macro call.",
	"fn":               "Usage: (fn (param...) body...)\n\nCreate a lambda closing over the current scope.",
	"fncall":           "Usage: (fncall f arg...)\n\nCall f with args.",
	"form":             "Usage: (form form...)\n\nEvaluate forms without allowing external commands.",
	"gensym":           "Usage: (gensym)\n\nReturn a fresh symbol.",
	"get":              "Usage: (get symbol)\n\nReturn the value bound to symbol, honoring dynamic bindings.",
	"get-error":        "Usage: (get-error form...)\n\nEvaluate forms. On error return #(:error message) instead of raising.",
	"if":               "Usage: (if cond then [cond then]... [else])\n\nEvaluate the then form for the first true cond.",
	"let":              "Usage: (let ((name value)...) body...)\n\nEvaluate body in a new scope with names bound.",
	"loose-symbols":    "Usage: (loose-symbols form...)\n\nEvaluate forms treating unbound symbols as strings.",
	"macro":            "Usage: (macro (param...) body...)\n\nCreate a macro.",
	"meta-column-no":   "Usage: (meta-column-no)\n\nReturn the column of the form being evaluated.",
	"meta-file-name":   "Usage: (meta-file-name)\n\nReturn the file name of the form being evaluated.",
	"meta-line-no":     "Usage: (meta-line-no)\n\nReturn the line of the form being evaluated.",
	"not":              "Usage: (not form)\n\nReturn t if form is nil.",
	"ns-create":        "Usage: (ns-create name)\n\nCreate and enter a namespace.",
	"ns-enter":         "Usage: (ns-enter name)\n\nEnter an existing namespace.",
	"ns-exists?":       "Usage: (ns-exists? name)\n\nReturn t if the namespace exists.",
	"ns-list":          "Usage: (ns-list)\n\nReturn a vector of namespace names.",
	"ns-pop":           "Usage: (ns-pop)\n\nLeave the current namespace.",
	"ns-symbols":       "Usage: (ns-symbols name)\n\nReturn a vector of the symbols bound in a namespace.",
	"or":               "Usage: (or form...)\n\nReturn the first true result.",
	"progn":            "Usage: (progn form...)\n\nEvaluate forms and return the last result.",
	"quote":            "Usage: (quote form)\n\nReturn form unevaluated.",
	"recur":            "Usage: (recur arg...)\n\nRestart the enclosing lambda with new arguments.",
	"return-from":      "Usage: (return-from name [value])\n\nExit the named block with value.",
	"run-bg":           "Usage: (run-bg form...)\n\nEvaluate forms starting external commands in the background.",
	"set":              "Usage: (set key [docstring] value)\n\nChange an existing binding.",
	"symbol-name":      "Usage: (symbol-name symbol)\n\nReturn the name of symbol as a string.",
	"to-symbol":        "Usage: (to-symbol x)\n\nConvert a string or number to a symbol.",
	"undef":            "Usage: (undef key)\n\nRemove key from the current scope.",
	"unwind-protect":   "Usage: (unwind-protect form cleanup...)\n\nEvaluate form then always evaluate the cleanup forms.",
}
