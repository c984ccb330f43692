// Command gpeval is a demo driver: it loads a CSV dataset, builds a
// PrimitiveSet from a named preset, evaluates a couple of fixed example
// trees against a target column, and prints a fitness report (§4.M). It
// does not search: tree construction, crossover, mutation, and selection
// remain external collaborators, per §1's scope boundary.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/wildfunctions/gpeval/pkg/dataset"
	"github.com/wildfunctions/gpeval/pkg/expr"
	"github.com/wildfunctions/gpeval/pkg/fitness"
	"github.com/wildfunctions/gpeval/pkg/report"
)

func main() {
	var (
		csvPath    = flag.String("csv", "", "path to a CSV dataset (required)")
		hasHeader  = flag.Bool("header", true, "whether the CSV's first row is a header")
		target     = flag.String("target", "", "name of the target column (required)")
		presetName = flag.String("preset", "arithmetic", "primitive set preset ("+strings.Join(expr.PresetNames(), ", ")+")")
		metric     = flag.String("metric", "nmse", "fitness metric (nmse, r2)")
		workers    = flag.Int("workers", runtime.NumCPU(), "number of parallel workers")
		format     = flag.String("format", "text", "output format (text, json)")
		evalBudget = flag.Int64("fitness-evaluation-budget", 0, "max real fitness evaluations to dispatch (0 = unlimited)")
		cacheSize  = flag.Int("hash-cache-size", 4096, "hash memoization cache size (0 disables)")
	)
	flag.Parse()

	if *csvPath == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "usage: gpeval -csv <path> -target <column> [flags]")
		os.Exit(2)
	}

	if err := run(*csvPath, *hasHeader, *target, *presetName, *metric, *workers, *format, *evalBudget, *cacheSize); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(csvPath string, hasHeader bool, target, presetName, metric string, workers int, format string, evalBudget int64, cacheSize int) error {
	ds, err := dataset.LoadCSV(csvPath, hasHeader)
	if err != nil {
		return err
	}

	preset, err := expr.Preset(presetName)
	if err != nil {
		return err
	}

	trees, err := exampleTrees(ds, preset)
	if err != nil {
		return err
	}

	problem := fitness.Problem{
		Dataset:           ds,
		TargetVariable:    target,
		TrainingRange:     ds.FullRange(),
		LocalOptimizer:    fitness.NoopOptimizer{},
		FitnessEvalBudget: evalBudget,
	}

	var facade fitness.Facade
	switch metric {
	case "r2":
		facade = fitness.NewRSquaredEvaluator(problem)
	default:
		facade = fitness.NewNMSEEvaluator(problem)
	}

	driver := fitness.NewDriver(workers)
	if cacheSize > 0 {
		cache, err := fitness.NewHashCache(cacheSize)
		if err != nil {
			return err
		}
		driver.Cache = cache
	}
	results := driver.EvaluatePopulation(facade, trees)

	fitnesses := make([]float64, len(results))
	errs := make([]error, len(results))
	for i, r := range results {
		fitnesses[i] = r.Fitness
		errs[i] = r.Err
	}

	summary := report.NewEvaluationSummary(fitnesses, errs, facade.FitnessEvaluations(), facade.LocalEvaluations())

	switch format {
	case "json":
		return report.WriteJSON(os.Stdout, summary)
	default:
		report.WriteTextDataset(os.Stdout, report.SummarizeDataset(ds))
		report.WriteTextPrimitiveSet(os.Stdout, report.SummarizePrimitiveSet(preset))
		report.WriteText(os.Stdout, summary)
		return nil
	}
}

// exampleTrees builds a couple of fixed example trees over ds's first
// two variables: a linear combination and a single-variable model. This
// stands in for the search loop's population: the CLI demonstrates the
// evaluation path, it does not search for trees.
func exampleTrees(ds *dataset.Dataset, preset *expr.PrimitiveSet) ([]*expr.Tree, error) {
	vars := ds.Variables()
	if len(vars) < 1 {
		return nil, fmt.Errorf("gpeval: dataset has no variables to build example trees from")
	}

	linear := expr.NewBuilder().Var(vars[0].Hash, 1.0).Const(1.0)
	if len(vars) > 1 {
		linear = linear.Var(vars[1].Hash, 1.0).AddN(3)
	} else {
		linear = linear.Add2()
	}

	single := expr.NewBuilder().Var(vars[0].Hash, 1.0).Build()

	return []*expr.Tree{linear.Build(), single}, nil
}
