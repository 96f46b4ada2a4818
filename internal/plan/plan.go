// Package plan defines the ordered rebase plan and its durable storage.
//
// A persisted plan is its own progress marker: after every successful step the
// executor saves the remaining suffix, so the file always holds exactly the work
// that is left. Concurrent executions against the same plan file are not
// supported; Store.Lock turns an accidental second run into an error.
package plan

// Step is one operation of a plan: a shell-safe command and a human-readable comment
type Step struct {
	Comment string
	Command string
}

// Plan is an ordered sequence of steps. Execution order, construction order and
// persisted order are the same; a Plan is never reordered.
type Plan struct {
	Steps []Step
}

// New creates a plan holding a copy of steps
func New(steps ...Step) Plan {
	return Plan{Steps: append([]Step(nil), steps...)}
}

// Len returns the number of steps
func (p Plan) Len() int {
	return len(p.Steps)
}

// IsEmpty reports whether there is nothing left to execute
func (p Plan) IsEmpty() bool {
	return len(p.Steps) == 0
}

// Remaining returns a snapshot of the steps after index i. The snapshot shares
// no memory with p.
func (p Plan) Remaining(i int) Plan {
	if i+1 >= len(p.Steps) {
		return Plan{}
	}
	return New(p.Steps[i+1:]...)
}
