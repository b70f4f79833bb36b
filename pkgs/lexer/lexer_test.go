package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tokenExpectation is an expected token without position information
type tokenExpectation struct {
	Type  TokenType
	Value string
}

func assertTokens(t *testing.T, input string, expected []tokenExpectation) {
	t.Helper()

	tokens := New(input).TokenizeToSlice()

	actual := make([]tokenExpectation, len(tokens))
	for i, tok := range tokens {
		actual[i] = tokenExpectation{Type: tok.Type, Value: tok.Value}
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("token mismatch for %q (-want +got):\n%s", input, diff)
		return
	}

	for i, tok := range tokens {
		if tok.Line <= 0 || tok.Column <= 0 {
			t.Errorf("token[%d] %s has invalid position %d:%d", i, tok.Type, tok.Line, tok.Column)
		}
	}
}

func TestSingleCharacterTokens(t *testing.T) {
	assertTokens(t, "(')`", []tokenExpectation{
		{LPAREN, "("},
		{QUOTE, "'"},
		{RPAREN, ")"},
		{QUASIQUOTE, "`"},
		{EOF, ""},
	})
}

func TestUnquoteTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "comma alone",
			input: ",x",
			expected: []tokenExpectation{
				{UNQUOTE, ","},
				{ATOM, "x"},
				{EOF, ""},
			},
		},
		{
			name:  "comma at",
			input: ",@xs",
			expected: []tokenExpectation{
				{UNQUOTE_SPLICING, ",@"},
				{ATOM, "xs"},
				{EOF, ""},
			},
		},
		{
			name:  "comma at end of input",
			input: ",",
			expected: []tokenExpectation{
				{UNQUOTE, ","},
				{EOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.input, tt.expected)
		})
	}
}

func TestAtomsAreMaximalRuns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "symbols and integers",
			input: "foo 42 -12 foo-bar",
			expected: []tokenExpectation{
				{ATOM, "foo"},
				{ATOM, "42"},
				{ATOM, "-12"},
				{ATOM, "foo-bar"},
				{EOF, ""},
			},
		},
		{
			name:  "run stops only at parens and whitespace",
			input: "a'b;c(d",
			expected: []tokenExpectation{
				{ATOM, "a'b;c"},
				{LPAREN, "("},
				{ATOM, "d"},
				{EOF, ""},
			},
		},
		{
			name:  "lone dot is an atom",
			input: "(a . b)",
			expected: []tokenExpectation{
				{LPAREN, "("},
				{ATOM, "a"},
				{ATOM, "."},
				{ATOM, "b"},
				{RPAREN, ")"},
				{EOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.input, tt.expected)
		})
	}
}

func TestCommentsAndWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "comment to end of line",
			input: "; a comment\nfoo",
			expected: []tokenExpectation{
				{ATOM, "foo"},
				{EOF, ""},
			},
		},
		{
			name:  "comment at end of input",
			input: "foo ; trailing",
			expected: []tokenExpectation{
				{ATOM, "foo"},
				{EOF, ""},
			},
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			expected: []tokenExpectation{
				{EOF, ""},
			},
		},
		{
			name:  "empty input",
			input: "",
			expected: []tokenExpectation{
				{EOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.input, tt.expected)
		})
	}
}

func TestPositions(t *testing.T) {
	tokens := New("(foo\n  bar)").TokenizeToSlice()

	expected := []struct {
		line   int
		column int
	}{
		{1, 1}, // (
		{1, 2}, // foo
		{2, 3}, // bar
		{2, 6}, // )
		{2, 7}, // EOF
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, want := range expected {
		if tokens[i].Line != want.line || tokens[i].Column != want.column {
			t.Errorf("token[%d] %s: position %d:%d, want %d:%d",
				i, tokens[i].Type, tokens[i].Line, tokens[i].Column, want.line, want.column)
		}
	}
}

func TestEOFTokenIsZeroLength(t *testing.T) {
	l := New("x")
	l.Next()
	eof := l.Next()
	if eof.Type != EOF || eof.Value != "" {
		t.Errorf("expected zero-length EOF token, got %s %q", eof.Type, eof.Value)
	}
	again := l.Next()
	if again.Type != EOF {
		t.Errorf("Next after EOF should stay EOF, got %s", again.Type)
	}
}
