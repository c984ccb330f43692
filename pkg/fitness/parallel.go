package fitness

import (
	"sync"

	"github.com/wildfunctions/gpeval/pkg/expr"
)

// Driver evaluates a population of trees in parallel against a shared
// Facade, generalizing the teacher's evaluatePopulation worker-pool
// pattern from "evaluate a series candidate" to "evaluate a tree against
// a fitness facade" (§4.I, §5). Each evaluation is independent: no
// cross-individual mutable state is shared, and the Dataset/PrimitiveSet
// backing the facade are read-only during the run.
type Driver struct {
	Workers int

	// Cache, if set, is consulted before dispatching each individual and
	// updated with every freshly computed result, so content-identical
	// trees recurring within a population, or carried over unchanged
	// across successive EvaluatePopulation calls, only pay for one real
	// Evaluate call (§4.K).
	Cache *HashCache
}

// NewDriver returns a Driver with the given worker count. A non-positive
// count is treated as 1.
func NewDriver(workers int) *Driver {
	if workers <= 0 {
		workers = 1
	}
	return &Driver{Workers: workers}
}

// Result pairs an individual's fitness with any error its evaluation
// produced (§7 "errors are surfaced to the caller").
type Result struct {
	Fitness float64
	Err     error
}

// EvaluatePopulation evaluates every tree in population against facade,
// returning one Result per tree in population order. Evaluation order
// across individuals is unspecified internally, but each individual
// actually dispatched is evaluated exactly once (§5 "Ordering
// guarantees").
//
// Dispatch tracks how many individuals it has sent for evaluation,
// starting from facade.FitnessEvaluations() so a budget carries across
// successive calls against the same facade. Once that count would reach
// a positive facade.Budget(), dispatch stops and every remaining
// individual's Result carries ErrBudgetExceeded instead of running —
// already dispatched work is never interrupted (§5 "Cancellation &
// timeouts", §6 "fitness_evaluation_budget"). The count is tracked
// locally, rather than by re-reading facade.FitnessEvaluations() per
// individual, so the decision doesn't race the workers still completing
// earlier jobs. It also checks d.Cache, if set, reusing a memoized
// Result for a content-identical tree instead of calling
// facade.Evaluate again.
func (d *Driver) EvaluatePopulation(facade Facade, population []*expr.Tree) []Result {
	n := len(population)
	results := make([]Result, n)

	workers := d.Workers
	if workers > n {
		workers = n
	}
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		idx       int
		tree      *expr.Tree
		cacheKey  uint64
		cacheable bool
	}

	jobs := make(chan job, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				fit, err := facade.Evaluate(j.tree)
				results[j.idx] = Result{Fitness: fit, Err: err}
				if d.Cache != nil && j.cacheable {
					d.Cache.PutResult(j.cacheKey, CachedResult{Fitness: fit, Err: err})
				}
			}
		}()
	}

	budget := facade.Budget()
	dispatched := facade.FitnessEvaluations()

	// firstByKey maps each content hash dispatched in this call to the
	// index that carries it; later duplicates copy that index's Result
	// once the workers finish instead of being evaluated again.
	firstByKey := make(map[uint64]int)
	var duplicates [][2]int

	for i, t := range population {
		// A cache hit never calls facade.Evaluate, so it never counts
		// as a real fitness evaluation and never consumes budget.
		if d.Cache != nil {
			if key, ok := ContentHash(t); ok {
				if cached, hit := d.Cache.GetResult(key); hit {
					results[i] = Result{Fitness: cached.Fitness, Err: cached.Err}
					continue
				}
				if first, seen := firstByKey[key]; seen {
					duplicates = append(duplicates, [2]int{i, first})
					continue
				}
				if budget > 0 && dispatched >= budget {
					results[i] = Result{Err: ErrBudgetExceeded}
					continue
				}
				dispatched++
				firstByKey[key] = i
				jobs <- job{idx: i, tree: t, cacheKey: key, cacheable: true}
				continue
			}
		}

		if budget > 0 && dispatched >= budget {
			results[i] = Result{Err: ErrBudgetExceeded}
			continue
		}
		dispatched++

		jobs <- job{idx: i, tree: t}
	}
	close(jobs)
	wg.Wait()

	for _, dup := range duplicates {
		results[dup[0]] = results[dup[1]]
	}

	return results
}
