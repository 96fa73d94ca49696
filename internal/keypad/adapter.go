// Package keypad turns button presses into calls on the arithmetic engine
// and keeps the text shown on the calculator display.
package keypad

import (
	"strconv"

	"keypad-calculator/internal/engine"
)

// EntryState describes the number currently being typed.
type EntryState int

const (
	Idle EntryState = iota
	TypingInteger
	TypingDecimal
)

func (s EntryState) String() string {
	switch s {
	case TypingInteger:
		return "typing_integer"
	case TypingDecimal:
		return "typing_decimal"
	default:
		return "idle"
	}
}

var operations = map[Button]engine.Operation{
	Plus:     engine.Add,
	Minus:    engine.Subtract,
	Multiply: engine.Multiply,
	Divide:   engine.Divide,
	Negate:   engine.Negate,
	Percent:  engine.Percent,
	Equals:   engine.Equal,
}

// Adapter owns an Engine and the display text. It is not safe for
// concurrent use.
type Adapter struct {
	engine          *engine.Engine
	display         string
	typing          bool
	hasDecimalPoint bool
	onChange        func(string)
}

type Option func(*Adapter)

// WithDisplayListener registers fn to be called with the new display text
// after every press that changes it.
func WithDisplayListener(fn func(string)) Option {
	return func(a *Adapter) {
		a.onChange = fn
	}
}

func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		engine:  engine.New(),
		display: "0",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Press handles one button and returns the display text afterwards.
// Invalid buttons are ignored.
func (a *Adapter) Press(b Button) string {
	before := a.display

	switch b.Kind() {
	case KindDigit:
		if a.typing {
			a.display += b.String()
		} else {
			a.display = b.String()
			a.typing = true
		}
	case KindDecimal:
		if a.hasDecimalPoint {
			break
		}
		if a.typing {
			a.display += b.String()
		} else {
			a.display = "0."
			a.typing = true
		}
		a.hasDecimalPoint = true
	case KindOperator:
		if a.typing {
			a.engine.SetOperand(a.displayValue())
			a.typing = false
			a.hasDecimalPoint = false
		}
		a.engine.Apply(operations[b])
		a.display = FormatNumber(a.engine.Result())
	case KindClear:
		a.display = "0"
		a.typing = false
		a.hasDecimalPoint = false
		a.engine.Clear()
	}

	if a.onChange != nil && a.display != before {
		a.onChange(a.display)
	}
	return a.display
}

// displayValue parses the display, falling back to 0 for text that is not a number.
func (a *Adapter) displayValue() float64 {
	v, err := strconv.ParseFloat(a.display, 64)
	if err != nil {
		return 0
	}
	return v
}

func (a *Adapter) Display() string {
	return a.display
}

// Result returns the engine's accumulator, which lags the display while a
// number is being typed.
func (a *Adapter) Result() float64 {
	return a.engine.Result()
}

func (a *Adapter) State() EntryState {
	switch {
	case !a.typing:
		return Idle
	case a.hasDecimalPoint:
		return TypingDecimal
	default:
		return TypingInteger
	}
}
