// Package engine implements the calculator's arithmetic core: a single
// accumulator and at most one pending binary operation.
//
// An Engine is not safe for concurrent use. Callers serialize access.
package engine

type kind int

const (
	kindNone kind = iota
	kindConstant
	kindUnary
	kindBinary
	kindEquals
)

// Operation is a request applied to the accumulator. Build one with
// Constant, Unary, Binary or Equals. The zero Operation does nothing.
type Operation struct {
	kind   kind
	value  float64
	unary  func(float64) float64
	binary func(float64, float64) float64
}

// Constant replaces the accumulator with v.
func Constant(v float64) Operation {
	return Operation{kind: kindConstant, value: v}
}

// Unary applies fn to the accumulator immediately.
func Unary(fn func(float64) float64) Operation {
	return Operation{kind: kindUnary, unary: fn}
}

// Binary captures the accumulator as the first operand of fn. The
// operation is resolved by the next Binary or Equals.
func Binary(fn func(a, b float64) float64) Operation {
	return Operation{kind: kindBinary, binary: fn}
}

// Equals resolves the pending binary operation, if any.
func Equals() Operation {
	return Operation{kind: kindEquals}
}

// The supported operator set.
var (
	Add      = Binary(func(a, b float64) float64 { return a + b })
	Subtract = Binary(func(a, b float64) float64 { return a - b })
	Multiply = Binary(func(a, b float64) float64 { return a * b })
	// Divide follows IEEE-754: a zero divisor yields ±Inf or NaN.
	Divide  = Binary(func(a, b float64) float64 { return a / b })
	Negate  = Unary(func(x float64) float64 { return -x })
	Percent = Unary(func(x float64) float64 { return x / 100 })
	Equal   = Equals()
)

type pendingBinary struct {
	fn    func(float64, float64) float64
	first float64
}

// Engine holds the accumulator and the pending operation.
type Engine struct {
	accumulator float64
	pending     *pendingBinary
}

// New returns an Engine with a zero accumulator.
func New() *Engine {
	return &Engine{}
}

// SetOperand overwrites the accumulator.
func (e *Engine) SetOperand(v float64) {
	e.accumulator = v
}

// Apply performs op against the accumulator. Chained binary operations
// evaluate strictly left to right: 1 + 2 × 3 = is 9.
func (e *Engine) Apply(op Operation) {
	switch op.kind {
	case kindConstant:
		e.accumulator = op.value
	case kindUnary:
		e.accumulator = op.unary(e.accumulator)
	case kindBinary:
		e.resolvePending()
		e.pending = &pendingBinary{fn: op.binary, first: e.accumulator}
	case kindEquals:
		// A second equals finds nothing pending and leaves the result alone.
		e.resolvePending()
	}
}

func (e *Engine) resolvePending() {
	if e.pending == nil {
		return
	}
	e.accumulator = e.pending.fn(e.pending.first, e.accumulator)
	e.pending = nil
}

// Clear zeroes the accumulator and drops any pending operation.
func (e *Engine) Clear() {
	e.accumulator = 0
	e.pending = nil
}

// Result returns the accumulator.
func (e *Engine) Result() float64 {
	return e.accumulator
}

// Pending reports whether a binary operation is waiting for its second operand.
func (e *Engine) Pending() bool {
	return e.pending != nil
}
