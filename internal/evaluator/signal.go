package evaluator

import "github.com/nyxlang/nyx/internal/value"

// signalKind distinguishes the three control-flow unwind variants from
// ordinary runtime errors (spec.md §4.6 "Control-flow unwind model").
type signalKind int

const (
	sigReturn signalKind = iota
	sigBreak
	sigContinue
)

// signal is a control-flow unwind: Break, Continue, or Return propagated
// up the call/loop stack as a distinct result type, not a runtime error.
// It implements error only so it can travel through the same (value,
// error) return channel as real runtime errors; callers must type-assert
// to tell the two apart.
type signal struct {
	kind  signalKind
	value value.Value
}

func (s *signal) Error() string {
	switch s.kind {
	case sigReturn:
		return "return used outside of function"
	case sigBreak:
		return "break used outside of loop"
	default:
		return "continue used outside of loop"
	}
}

func asSignal(err error) (*signal, bool) {
	s, ok := err.(*signal)
	return s, ok
}
