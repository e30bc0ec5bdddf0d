// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package engine_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nachofregeiro/jsonformatter"
	"github.com/nachofregeiro/jsonformatter/ast"
	"github.com/nachofregeiro/jsonformatter/engine"
	"github.com/nachofregeiro/jsonformatter/internal/testutil"
	"github.com/tailscale/hujson"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		opts  engine.Options
		want  string
	}{
		{`{"a":1}`, engine.DefaultOptions, "{\n  \"a\": 1\n}"},
		{`{"a":1}`, engine.Options{IndentWidth: 4}, "{\n    \"a\": 1\n}"},
		{`{"a":1}`, engine.Options{}, "{\n\t\"a\": 1\n}"},
		{`  [ ]  `, engine.DefaultOptions, `[]`},
		{`{"b":1,"a":[2,{"d":3,"c":4}]}`, engine.Options{IndentWidth: 2, SortKeys: true},
			"{\n  \"a\": [\n    2,\n    {\n      \"c\": 4,\n      \"d\": 3\n    }\n  ],\n  \"b\": 1\n}"},
		{`{"b":1,"a":2}`, engine.DefaultOptions, "{\n  \"b\": 1,\n  \"a\": 2\n}"},
		{`1.50`, engine.DefaultOptions, `1.5`},
		{`"\u0041\/"`, engine.DefaultOptions, `"A/"`},
	}
	for _, test := range tests {
		got, err := engine.Format(test.input, test.opts)
		if err != nil {
			t.Errorf("Format %#q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Format %#q %+v (-want, +got):\n%s", test.input, test.opts, diff)
		}
	}

	if got, err := engine.Format(`{}`, engine.Options{IndentWidth: -1}); err == nil {
		t.Errorf("Format with negative width: got %#q, want error", got)
	} else if f := (*engine.Failure)(nil); errors.As(err, &f) {
		t.Errorf("Format with negative width: got failure %v, want plain error", f)
	}
}

func TestMinify(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`{"a": 1, "b": [true, false, null]}`, `{"a":1,"b":[true,false,null]}`},
		{"{\n  \"a\" :\t\"x y\"\r\n}", `{"a":"x y"}`},
		{` 0 `, `0`},
		{`-0`, `-0`},
		{`1E2`, `100`},
		{`12345678901234567890123`, `1.2345678901234568e+22`},
		{`0.0000001`, `1e-7`},
		{`{"a":1,"a":2}`, `{"a":2}`},
		{`"\ud83d\ude00"`, "\"\U0001F600\""},
		{`"\ud83d"`, "\"\\ufffd\""},
		{`"\u2028"`, "\"\\u2028\""},
		{`"\u001f"`, "\"\\u001f\""},
	}
	for _, test := range tests {
		got, err := engine.Minify(test.input)
		if err != nil {
			t.Errorf("Minify %#q: unexpected error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("Minify %#q: got %#q, want %#q", test.input, got, test.want)
		}
		if again, err := engine.Minify(got); err != nil || again != got {
			t.Errorf("Minify %#q is not idempotent: got %#q, %v", got, again, err)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, input := range []string{
		`null`, `true`, `"x"`, `-1.5e-3`, `[]`, `{}`,
		`{"a": [1, 2, {"b": null}]}`,
		"\t[\n1\n]\n",
	} {
		if err := engine.Validate(input); err != nil {
			t.Errorf("Validate %#q: unexpected error: %v", input, err)
		}
	}
}

func TestFailures(t *testing.T) {
	tests := []struct {
		input        string
		kind         jsonformatter.ErrorKind
		line, column int
		message      string
	}{
		{"{\n  \"a\": ,\n}", jsonformatter.SyntacticError, 2, 8, `expected value, got ","`},
		{`{"a":1,}`, jsonformatter.SyntacticError, 1, 8, `expected string, got "}"`},
		{`[1 2]`, jsonformatter.SyntacticError, 1, 4, `expected "]" or ",", got number`},
		{`{"a" 1}`, jsonformatter.SyntacticError, 1, 6, `expected ":", got number`},
		{`[1] [2]`, jsonformatter.SyntacticError, 1, 5, `unexpected trailing content: "["`},
		{"[\n\n  'x']", jsonformatter.LexicalError, 3, 3, `unexpected '\''`},
		{`[01]`, jsonformatter.LexicalError, 1, 3, `extra leading zeroes`},
		{`[1e400]`, jsonformatter.LexicalError, 1, 2, `number 1e400 out of range`},
		{`[tru]`, jsonformatter.LexicalError, 1, 5, `invalid ']' in constant "true"`},
		{`NaN`, jsonformatter.LexicalError, 1, 1, `unexpected 'N'`},
	}
	for _, test := range tests {
		for name, op := range ops {
			err := op(test.input)
			var f *engine.Failure
			if !errors.As(err, &f) {
				t.Errorf("%s %#q: got error %v, want *Failure", name, test.input, err)
				continue
			}
			if !f.HasLocation() {
				t.Errorf("%s %#q: failure %v has no location", name, test.input, f)
			}
			got := [4]any{f.Kind, f.Line, f.Column, f.Message}
			want := [4]any{test.kind, test.line, test.column, test.message}
			if got != want {
				t.Errorf("%s %#q: got %v, want %v", name, test.input, got, want)
			}
			var serr *jsonformatter.SyntaxError
			if !errors.As(err, &serr) || serr.Pos != f.Offset {
				t.Errorf("%s %#q: failure does not wrap the syntax error: %v", name, test.input, err)
			}
		}
	}
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", " ", "\n\t\r\n", "\f", "\ufeff\n", "\u00a0 \u3000"} {
		for name, op := range ops {
			err := op(input)
			var f *engine.Failure
			if !errors.As(err, &f) {
				t.Errorf("%s %#q: got error %v, want *Failure", name, input, err)
				continue
			}
			if f.HasLocation() || f.Offset != -1 {
				t.Errorf("%s %#q: got location %d:%d at %d, want none", name, input, f.Line, f.Column, f.Offset)
			}
			if f.Kind != jsonformatter.EmptyInput || !errors.Is(err, jsonformatter.ErrEmptyInput) {
				t.Errorf("%s %#q: got %v (%v), want empty input", name, input, err, f.Kind)
			}
		}
	}
}

func TestFailureError(t *testing.T) {
	_, err := engine.Minify("{\n  \"a\": ,\n}")
	if err == nil {
		t.Fatal("Minify: got nil, want error")
	}
	const want = `line 2, column 8: expected value, got ","`
	if got := err.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

// ops adapts each parsing operation to report only its error.
var ops = map[string]func(string) error{
	"Format": func(s string) error {
		out, err := engine.Format(s, engine.DefaultOptions)
		return checkEmpty(out, err)
	},
	"Minify":   func(s string) error { return checkEmpty(engine.Minify(s)) },
	"Validate": engine.Validate,
}

func checkEmpty(out string, err error) error {
	if err != nil && out != "" {
		return errors.New("non-empty output with error")
	}
	return err
}

func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 300 {
		v := testutil.RandomValue(rng, 5)
		input := ast.Formatter{IndentWidth: rng.IntN(5)}.FormatToString(v)

		if err := engine.Validate(input); err != nil {
			t.Fatalf("Validate %#q: unexpected error: %v", input, err)
		}
		mini, err := engine.Minify(input)
		if err != nil {
			t.Fatalf("Minify %#q: unexpected error: %v", input, err)
		}
		if mini != v.JSON() {
			t.Errorf("Minify %#q: got %#q, want %#q", input, mini, v.JSON())
		}

		// Formatting and minifying describe the same value.
		for _, opts := range []engine.Options{{}, {IndentWidth: 2}, {IndentWidth: 7, SortKeys: true}} {
			pretty, err := engine.Format(mini, opts)
			if err != nil {
				t.Fatalf("Format %#q: unexpected error: %v", mini, err)
			}
			again, err := engine.Format(pretty, opts)
			if err != nil || again != pretty {
				t.Errorf("Format is not idempotent on %#q: got %#q, %v", pretty, again, err)
			}
			if opts.SortKeys {
				continue
			}
			if m2, err := engine.Minify(pretty); err != nil || m2 != mini {
				t.Errorf("Minify(Format(%#q)): got %#q, %v", mini, m2, err)
			}
		}

		// Sorting is insensitive to the original order of members.
		sorted, err := engine.Format(input, engine.Options{IndentWidth: 2, SortKeys: true})
		if err != nil {
			t.Fatalf("Format sorted: unexpected error: %v", err)
		}
		rev, err := engine.Format(ast.Formatter{}.FormatToString(reverse(v)), engine.Options{IndentWidth: 2, SortKeys: true})
		if err != nil {
			t.Fatalf("Format reversed: unexpected error: %v", err)
		}
		if diff := cmp.Diff(sorted, rev); diff != "" {
			t.Errorf("Sorted output depends on member order (-fwd, +rev):\n%s", diff)
		}
	}
}

// reverse returns a copy of v with the members of every object reversed.
func reverse(v ast.Value) ast.Value {
	switch t := v.(type) {
	case ast.Array:
		out := make(ast.Array, len(t))
		for i, elt := range t {
			out[i] = reverse(elt)
		}
		return out
	case ast.Object:
		out := make(ast.Object, len(t))
		for i, m := range t {
			out[len(t)-1-i] = ast.Field(m.Key, reverse(m.Value))
		}
		return out
	default:
		return v
	}
}

// TestMinifyOracle checks Minify against an independent minimizer, on inputs
// whose strings and numbers are already in canonical form.
func TestMinifyOracle(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 200 {
		input := ast.Formatter{IndentWidth: 1 + rng.IntN(4)}.FormatToString(testutil.RandomValue(rng, 5))

		hv, err := hujson.Parse([]byte(input))
		if err != nil {
			t.Fatalf("hujson.Parse %#q: %v", input, err)
		}
		hv.Minimize()
		want := string(hv.Pack())

		got, err := engine.Minify(input)
		if err != nil {
			t.Fatalf("Minify %#q: unexpected error: %v", input, err)
		}
		if got != want {
			t.Errorf("Minify %#q:\n got %#q\nwant %#q", input, got, want)
		}
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		input string
		want  engine.TextStats
	}{
		{"", engine.TextStats{Size: "0 bytes"}},
		{"a\nb", engine.TextStats{Characters: 3, Lines: 2, Bytes: 3, Size: "3 bytes"}},
		{"\n", engine.TextStats{Characters: 1, Lines: 2, Bytes: 1, Size: "1 bytes"}},
		{"{}", engine.TextStats{Characters: 2, Lines: 1, Bytes: 2, Size: "2 bytes"}},
		{"not json \u00e9", engine.TextStats{Characters: 10, Lines: 1, Bytes: 11, Size: "11 bytes"}},
		{strings.Repeat("x", 1536), engine.TextStats{Characters: 1536, Lines: 1, Bytes: 1536, Size: "1.5 KB"}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, engine.Stats(test.input)); diff != "" {
			t.Errorf("Stats %#q (-want, +got):\n%s", test.input, diff)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.0 KB"},
		{2048 + 512, "2.5 KB"},
		{1 << 20, "1.0 MB"},
		{3 << 20, "3.0 MB"},
		{5 << 29, "2560.0 MB"},
	}
	for _, test := range tests {
		if got := engine.FormatSize(test.n); got != test.want {
			t.Errorf("FormatSize(%d): got %q, want %q", test.n, got, test.want)
		}
	}
}
