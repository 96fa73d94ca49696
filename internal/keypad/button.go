package keypad

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknownButton is returned when a key name or glyph matches no button.
var ErrUnknownButton = errors.New("unknown button")

// Button identifies one key of the calculator keypad. Zero through Nine
// have the numeric value of their digit.
type Button int

const (
	Zero Button = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Decimal
	Plus
	Minus
	Multiply
	Divide
	Negate
	Percent
	Equals
	Clear
)

// Kind groups buttons by how the adapter treats them.
type Kind int

const (
	KindUnknown Kind = iota
	KindDigit
	KindDecimal
	KindOperator
	KindClear
)

var titles = [...]string{
	Zero:     "0",
	One:      "1",
	Two:      "2",
	Three:    "3",
	Four:     "4",
	Five:     "5",
	Six:      "6",
	Seven:    "7",
	Eight:    "8",
	Nine:     "9",
	Decimal:  ".",
	Plus:     "+",
	Minus:    "-",
	Multiply: "×",
	Divide:   "÷",
	Negate:   "±",
	Percent:  "%",
	Equals:   "=",
	Clear:    "AC",
}

var names = [...]string{
	Decimal:  "decimal",
	Plus:     "plus",
	Minus:    "minus",
	Multiply: "multiply",
	Divide:   "divide",
	Negate:   "negate",
	Percent:  "percent",
	Equals:   "equals",
	Clear:    "clear",
}

// String returns the glyph printed on the key.
func (b Button) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return titles[b]
}

// Name returns a stable ASCII identifier, used as a metric and span attribute.
func (b Button) Name() string {
	switch {
	case !b.Valid():
		return "unknown"
	case b.Kind() == KindDigit:
		return "digit"
	default:
		return names[b]
	}
}

func (b Button) Valid() bool {
	return b >= Zero && b <= Clear
}

func (b Button) Kind() Kind {
	switch {
	case b >= Zero && b <= Nine:
		return KindDigit
	case b == Decimal:
		return KindDecimal
	case b >= Plus && b <= Equals:
		return KindOperator
	case b == Clear:
		return KindClear
	default:
		return KindUnknown
	}
}

var aliases = map[string]Button{
	"point":     Decimal,
	"add":       Plus,
	"subtract":  Minus,
	"*":         Multiply,
	"x":         Multiply,
	"times":     Multiply,
	"/":         Divide,
	"+/-":       Negate,
	"~":         Negate,
	"plusminus": Negate,
	"enter":     Equals,
	"ac":        Clear,
	"c":         Clear,
}

// ParseButton resolves a glyph ("7", "×", "AC"), a name ("multiply") or an
// ASCII alias ("*", "c") to a Button. Matching ignores case and surrounding space.
func ParseButton(name string) (Button, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for b := Zero; b <= Clear; b++ {
		if key == strings.ToLower(titles[b]) || (names[b] != "" && key == names[b]) {
			return b, nil
		}
	}
	if b, ok := aliases[key]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// ParseKeys splits a compact key string such as "12.5×4=" into buttons.
// Every rune is one key except "AC" and "+/-"; whitespace is skipped.
func ParseKeys(s string) ([]Button, error) {
	var buttons []Button
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) {
			continue
		}

		token := string(r)
		switch {
		case (r == 'a' || r == 'A') && i+1 < len(runes) && unicode.ToLower(runes[i+1]) == 'c':
			token = "ac"
			i++
		case r == '+' && i+2 < len(runes) && runes[i+1] == '/' && runes[i+2] == '-':
			token = "+/-"
			i += 2
		}

		b, err := ParseButton(token)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", len(buttons), err)
		}
		buttons = append(buttons, b)
	}
	return buttons, nil
}
