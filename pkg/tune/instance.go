package tune

// Evaluator evaluates candidate solutions for a problem of type P inside
// the host's own optimization loop. Evaluators are cloneable so each
// invocation can own a private copy without re-deriving one from scratch;
// stateless evaluators may return themselves from Clone.
type Evaluator[P any] interface {
	Evaluate(problem *P, candidate []float64) (float64, error)
	Clone() Evaluator[P]
}

// EvaluatorFunc adapts a stateless function to Evaluator.
type EvaluatorFunc[P any] func(problem *P, candidate []float64) (float64, error)

// Evaluate calls the function.
func (f EvaluatorFunc[P]) Evaluate(problem *P, candidate []float64) (float64, error) {
	return f(problem, candidate)
}

// Clone returns the function itself; it carries no state.
func (f EvaluatorFunc[P]) Clone() Evaluator[P] {
	return f
}

// Instance is one problem instance for a tuning run: a shared problem
// value plus its evaluation strategy. Instances are registered before the
// run starts, never mutated afterwards, and shared read-only across
// concurrent experiment invocations.
type Instance[P any] struct {
	problem   *P
	evaluator Evaluator[P]
}

// NewInstance creates an instance from a problem and its evaluator.
func NewInstance[P any](problem *P, evaluator Evaluator[P]) Instance[P] {
	return Instance[P]{problem: problem, evaluator: evaluator}
}

// Problem returns the shared problem value.
func (i Instance[P]) Problem() *P {
	return i.problem
}

// Evaluator returns a private clone of the evaluation strategy.
func (i Instance[P]) Evaluator() Evaluator[P] {
	return i.evaluator.Clone()
}

// Unpack returns the problem and a private evaluator clone.
func (i Instance[P]) Unpack() (*P, Evaluator[P]) {
	return i.Problem(), i.Evaluator()
}
