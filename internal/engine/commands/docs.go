// Released under an MIT license. See LICENSE.

package commands

var docs = map[string]string{ //nolint:gochecknoglobals
	"+":          "Usage: (+ number...)\n\nAdd numbers. Integers stay integers until a float appears.",
	"-":          "Usage: (- number number...)\n\nSubtract from the first number or negate a single number.",
	"*":          "Usage: (* number...)\n\nMultiply numbers.",
	"/":          "Usage: (/ number number...)\n\nDivide. Integer division when every argument is an integer.",
	"%":          "Usage: (% int int)\n\nInteger remainder.",
	"=":          "Usage: (= x y...)\n\nCompare numbers or strings for equality.",
	"<":          "Usage: (< x y...)\n\nTrue if arguments are strictly increasing.",
	"eq?":        "Usage: (eq? x y)\n\nTrue for the same object or equal atoms.",
	"equal?":     "Usage: (equal? x y)\n\nStructural equality.",
	"export":     "Usage: (export symbol value)\n\nSet an environment variable and return its value as a string.",
	"format":     "Usage: (format x...)\n\nConcatenate the text of every argument.",
	"gc":         "Usage: (gc)\n\nRequest a collection after the current top-level form.",
	"gc-stats":   "Usage: (gc-stats)\n\nReturn #(live collected).",
	"jobs":       "Usage: (jobs)\n\nList background and stopped jobs.",
	"length":     "Usage: (length x)\n\nCharacters in a string, elements in a collection, one for other atoms.",
	"load":       "Usage: (load path)\n\nRead and evaluate every form in a file.",
	"print":      "Usage: (print x...)\n\nWrite the text of each argument to *stdout*.",
	"println":    "Usage: (println x...)\n\nprint followed by a newline.",
	"pr":         "Usage: (pr x...)\n\nWrite the printed form of each argument to *stdout*.",
	"read":       "Usage: (read string)\n\nParse the first form in string.",
	"str-split":  "Usage: (str-split separator string)\n\nSplit string into a vector of strings.",
	"type":       "Usage: (type x)\n\nReturn the type name of x.",
	"version":    "Usage: (version)\n\nReturn the lish version.",
	"wait":       "Usage: (wait process)\n\nWait for a process and return its exit status.",
}
