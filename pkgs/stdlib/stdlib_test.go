package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/parens/pkgs/engine"
)

// evalLast evaluates src and returns the printed result of its last form
func evalLast(t *testing.T, src string) string {
	t.Helper()
	ip, err := engine.New()
	require.NoError(t, err)
	results, err := ip.EvalSource(src)
	require.NoError(t, err, "EvalSource(%q)", src)
	require.NotEmpty(t, results)
	return ip.Print(results[len(results)-1])
}

func TestListBasics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"list", "(list 1 2 3)", "(1 2 3)"},
		{"list empty", "(list)", "NIL"},
		{"reverse", "(reverse '(1 2 3))", "(3 2 1)"},
		{"append", "(append '(1 2) '(3 4))", "(1 2 3 4)"},
		{"append to nil", "(append nil '(1))", "(1)"},
		{"foldl", "(foldl binary- 10 '(1 2 3))", "4"},
		{"foldr", "(foldr cons nil '(1 2 3))", "(1 2 3)"},
		{"unary-map", "(unary-map car '((1 2) (3 4)))", "(1 3)"},
		{"map one list", "(map (lambda (x) (* x x)) '(1 2 3))", "(1 4 9)"},
		{"map two lists", "(map binary+ '(1 2 3) '(10 20 30))", "(11 22 33)"},
		{"caar", "(caar '((1 2) 3))", "1"},
		{"cadr", "(cadr '(1 2 3))", "2"},
		{"cddr", "(cddr '(1 2 3))", "(3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalLast(t, tt.src))
		})
	}
}

func TestVariadicArithmetic(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"sum of none", "(+)", "0"},
		{"sum of one", "(+ 5)", "5"},
		{"sum of many", "(+ 1 2 3 4)", "10"},
		{"product of none", "(*)", "1"},
		{"product of many", "(* 2 3 4)", "24"},
		{"unary minus negates", "(- 5)", "-5"},
		{"chained minus", "(- 10 1 2)", "7"},
		{"unary divide inverts", "(/ 1)", "1"},
		{"chained divide", "(/ 100 5 2)", "10"},
		{"abs negative", "(abs -3)", "3"},
		{"abs positive", "(abs 3)", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalLast(t, tt.src))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.Equal(t, "T", evalLast(t, "(null? nil)"))
	assert.Equal(t, "NIL", evalLast(t, "(null? '(1))"))
	assert.Equal(t, "NIL", evalLast(t, "(not t)"))
	assert.Equal(t, "T", evalLast(t, "(not nil)"))
}

func TestQuasiquote(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain quasiquote is quote", "`(a b c)", "(A B C)"},
		{"atom", "`x", "X"},
		{"unquote", "(define b 2) `(1 ,b 3)", "(1 2 3)"},
		{"unquote expression", "`(1 ,(+ 1 1) 3)", "(1 2 3)"},
		{"splicing", "`(1 ,@'(2 3) 4)", "(1 2 3 4)"},
		{"splicing computed", "`(a ,@(list 1 2) b)", "(A 1 2 B)"},
		{"nested structure", "`((1 ,(+ 1 1)) 3)", "((1 2) 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalLast(t, tt.src))
		})
	}
}

func TestControlMacros(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"begin sequences", "(begin 1 2 3)", "3"},
		{"begin scopes defines", "(define x 1) (begin (define y 2) (+ x y))", "3"},
		{"when true", "(when t 1 2)", "2"},
		{"when false", "(when nil 1 2)", "NIL"},
		{"unless false", "(unless nil 'ran)", "RAN"},
		{"unless true", "(unless t 'ran)", "NIL"},
		{"and empty", "(and)", "T"},
		{"and all true", "(and 1 2 3)", "3"},
		{"and short circuit", "(and nil no-such-symbol)", "NIL"},
		{"or empty", "(or)", "NIL"},
		{"or short circuits to truth", "(or 1 no-such-symbol)", "T"},
		{"or falls through", "(or nil 2)", "2"},
		{"let binds", "(let ((a 1) (b 2)) (+ a b))", "3"},
		{"let shadows", "(define a 10) (let ((a 1)) a)", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalLast(t, tt.src))
		})
	}
}

func TestWhenScenario(t *testing.T) {
	ip, err := engine.New()
	require.NoError(t, err)
	results, err := ip.EvalSource(
		"(defmacro (when c . body) (list 'if c (cons 'begin body) nil)) (when t 42)")
	require.NoError(t, err)
	printed := make([]string, len(results))
	for i, r := range results {
		printed[i] = ip.Print(r)
	}
	assert.Equal(t, []string{"WHEN", "42"}, printed)
}

func TestStdlibCanBeDisabled(t *testing.T) {
	ip, err := engine.New(engine.WithoutStdlib())
	require.NoError(t, err)
	_, err = ip.EvalSource("(list 1 2)")
	require.Error(t, err, "LIST is part of the bootstrap library")
	results, err := ip.EvalSource("(+ 1 2)")
	require.NoError(t, err)
	assert.Equal(t, "3", ip.Print(results[0]))
}
