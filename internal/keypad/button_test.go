package keypad

import (
	"errors"
	"math"
	"testing"
)

func TestParseButton(t *testing.T) {
	tests := []struct {
		name string
		want Button
	}{
		{name: "0", want: Zero},
		{name: "9", want: Nine},
		{name: ".", want: Decimal},
		{name: "point", want: Decimal},
		{name: "+", want: Plus},
		{name: "Plus", want: Plus},
		{name: "-", want: Minus},
		{name: "×", want: Multiply},
		{name: "*", want: Multiply},
		{name: "÷", want: Divide},
		{name: "/", want: Divide},
		{name: "±", want: Negate},
		{name: "negate", want: Negate},
		{name: "%", want: Percent},
		{name: "=", want: Equals},
		{name: " AC ", want: Clear},
		{name: "c", want: Clear},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseButton(tc.name)
			if err != nil {
				t.Fatalf("parsing %q: %v", tc.name, err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseButtonUnknown(t *testing.T) {
	_, err := ParseButton("sqrt")
	if !errors.Is(err, ErrUnknownButton) {
		t.Fatalf("expected ErrUnknownButton, got %v", err)
	}
}

func TestParseKeys(t *testing.T) {
	got, err := ParseKeys("12 .5×AC+/-=")
	if err != nil {
		t.Fatalf("parsing keys: %v", err)
	}

	want := []Button{One, Two, Decimal, Five, Multiply, Clear, Negate, Equals}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestParseKeysReportsPosition(t *testing.T) {
	_, err := ParseKeys("1+q")
	if !errors.Is(err, ErrUnknownButton) {
		t.Fatalf("expected ErrUnknownButton, got %v", err)
	}
	if want := `key 2: unknown button: "q"`; err.Error() != want {
		t.Fatalf("expected error %q, got %q", want, err.Error())
	}
}

func TestButtonKindAndName(t *testing.T) {
	tests := []struct {
		button Button
		kind   Kind
		name   string
	}{
		{button: Seven, kind: KindDigit, name: "digit"},
		{button: Decimal, kind: KindDecimal, name: "decimal"},
		{button: Divide, kind: KindOperator, name: "divide"},
		{button: Equals, kind: KindOperator, name: "equals"},
		{button: Clear, kind: KindClear, name: "clear"},
		{button: Button(-1), kind: KindUnknown, name: "unknown"},
	}

	for _, tc := range tests {
		if got := tc.button.Kind(); got != tc.kind {
			t.Fatalf("%v: expected kind %d, got %d", tc.button, tc.kind, got)
		}
		if got := tc.button.Name(); got != tc.name {
			t.Fatalf("%v: expected name %q, got %q", tc.button, tc.name, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.0"},
		{in: math.Copysign(0, -1), want: "-0.0"},
		{in: 9, want: "9.0"},
		{in: -2.5, want: "-2.5"},
		{in: 1234567, want: "1234567.0"},
		{in: 0.0001, want: "0.0001"},
		{in: 0.00001, want: "1e-05"},
		{in: 1e16, want: "1e+16"},
		{in: math.Inf(1), want: "inf"},
		{in: math.Inf(-1), want: "-inf"},
		{in: math.NaN(), want: "nan"},
	}

	for _, tc := range tests {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%g): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
