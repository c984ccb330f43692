package fitness

import "errors"

// ErrBudgetExceeded is returned in a Result for any individual the
// Parallel Driver never dispatched because the facade's fitness
// evaluation budget had already been reached (§5 "Cancellation &
// timeouts", §6 "fitness_evaluation_budget"). Individuals already
// dispatched before the budget was reached still run to completion.
var ErrBudgetExceeded = errors.New("fitness: evaluation budget exceeded")
