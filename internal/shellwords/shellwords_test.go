package shellwords

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t ", nil},
		{"single word", "build", []string{"build"}},
		{"multiple words", "build --release -v", []string{"build", "--release", "-v"}},
		{"extra spacing", "  a   b  ", []string{"a", "b"}},
		{"single quotes", "echo 'hello world'", []string{"echo", "hello world"}},
		{"double quotes", `echo "hello world"`, []string{"echo", "hello world"}},
		{"empty quoted arg", "a '' b", []string{"a", "", "b"}},
		{"adjacent quoted parts", `pre'mid'post`, []string{"premidpost"}},
		{"double quote escape", `say "she said \"hi\""`, []string{"say", `she said "hi"`}},
		{"backslash escape", `a\ b`, []string{"a b"}},
		{"double quotes keep singles", `"don't"`, []string{"don't"}},
		{"single quotes keep backslash", `'a\b'`, []string{`a\b`}},
		{"unicode", "héllo wörld", []string{"héllo", "wörld"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.raw)
			if err != nil {
				t.Fatalf("Split(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSplit_Errors(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{`arg1 "unclosed`, ErrUnterminatedQuote},
		{`'unclosed`, ErrUnterminatedQuote},
		{`trailing\`, ErrTrailingEscape},
	}
	for _, tt := range tests {
		args, err := Split(tt.raw)
		if err == nil {
			t.Errorf("Split(%q) = %#v, want error (never a fallback list)", tt.raw, args)
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("Split(%q) error = %v, want %v", tt.raw, err, tt.want)
		}
	}
}

func TestJoin_RoundTrip(t *testing.T) {
	lists := [][]string{
		{"build"},
		{"deploy", "--env", "prod"},
		{"say", "hello world"},
		{"mixed", "", "with space", "plain"},
		{"tabs\tinside", "ünïcode wörd"},
	}
	for _, list := range lists {
		joined := Join(list)
		got, err := Split(joined)
		if err != nil {
			t.Fatalf("Split(Join(%#v)) error = %v (joined: %q)", list, err, joined)
		}
		if !reflect.DeepEqual(got, list) {
			t.Errorf("round trip failed: %#v -> %q -> %#v", list, joined, got)
		}
	}
}

func TestJoin_RoundTripWithQuotes(t *testing.T) {
	list := []string{"it's", `a "quote"`, `back\slash`}
	got, err := Split(Join(list))
	if err != nil {
		t.Fatalf("Split(Join()) error = %v", err)
	}
	if !reflect.DeepEqual(got, list) {
		t.Errorf("round trip failed: %#v -> %#v", list, got)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"plain", "plain"},
		{"", "''"},
		{"two words", "'two words'"},
		{"it's", `"it's"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.arg); got != tt.want {
			t.Errorf("Quote(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}
