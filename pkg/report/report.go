// Package report implements structured run reporting (§4.L), adapted
// from the teacher's pkg/engine/output.go text/JSON renderers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/wildfunctions/gpeval/pkg/dataset"
	"github.com/wildfunctions/gpeval/pkg/expr"
)

// DatasetSummary reports a dataset's shape and variable table.
type DatasetSummary struct {
	Rows      int               `json:"rows"`
	Variables []dataset.Variable `json:"variables"`
}

// SummarizeDataset builds a DatasetSummary from ds.
func SummarizeDataset(ds *dataset.Dataset) DatasetSummary {
	return DatasetSummary{Rows: ds.Rows(), Variables: ds.Variables()}
}

// PrimitiveSetSummary reports a PrimitiveSet's enabled kinds, frequencies,
// and arity bounds.
type PrimitiveSetSummary struct {
	Name  string              `json:"name"`
	Kinds []PrimitiveKindEntry `json:"kinds"`
}

// PrimitiveKindEntry describes one enabled kind's configuration.
type PrimitiveKindEntry struct {
	Kind      string  `json:"kind"`
	Frequency float64 `json:"frequency"`
	MinArity  int     `json:"min_arity"`
	MaxArity  int     `json:"max_arity"`
}

// SummarizePrimitiveSet builds a PrimitiveSetSummary from p.
func SummarizePrimitiveSet(p *expr.PrimitiveSet) PrimitiveSetSummary {
	summary := PrimitiveSetSummary{Name: p.Name()}
	for _, k := range p.EnabledKinds() {
		summary.Kinds = append(summary.Kinds, PrimitiveKindEntry{
			Kind:      k.String(),
			Frequency: p.Frequency(k),
			MinArity:  p.MinArity(k),
			MaxArity:  p.MaxArity(k),
		})
	}
	return summary
}

// EvaluationSummary reports one population evaluation pass: best/worst/
// mean fitness and the evaluator's counters (§4.L).
type EvaluationSummary struct {
	RunID              string    `json:"run_id"`
	Timestamp          time.Time `json:"timestamp"`
	PopulationSize     int       `json:"population_size"`
	BestFitness        float64   `json:"best_fitness"`
	WorstFitness       float64   `json:"worst_fitness"`
	MeanFitness        float64   `json:"mean_fitness"`
	FailedEvaluations  int       `json:"failed_evaluations"`
	FitnessEvaluations int64     `json:"fitness_evaluations"`
	LocalEvaluations   int64     `json:"local_evaluations"`
}

// NewEvaluationSummary computes an EvaluationSummary from per-individual
// fitness values, skipping entries where err is non-nil in the mean/best/
// worst computation but counting them in FailedEvaluations.
func NewEvaluationSummary(fitnesses []float64, errs []error, fitnessEvaluations, localEvaluations int64) EvaluationSummary {
	summary := EvaluationSummary{
		RunID:              uuid.NewString(),
		Timestamp:          time.Now().UTC(),
		PopulationSize:     len(fitnesses),
		FitnessEvaluations: fitnessEvaluations,
		LocalEvaluations:   localEvaluations,
	}

	first := true
	var sum float64
	var count int
	for i, f := range fitnesses {
		if errs != nil && errs[i] != nil {
			summary.FailedEvaluations++
			continue
		}
		if first {
			summary.BestFitness = f
			summary.WorstFitness = f
			first = false
		} else {
			if f < summary.BestFitness {
				summary.BestFitness = f
			}
			if f > summary.WorstFitness {
				summary.WorstFitness = f
			}
		}
		sum += f
		count++
	}
	if count > 0 {
		summary.MeanFitness = sum / float64(count)
	}
	return summary
}

// WriteTextDataset writes a DatasetSummary in human-readable format.
func WriteTextDataset(w io.Writer, s DatasetSummary) {
	fmt.Fprintf(w, "Dataset: %d rows, %d variables\n", s.Rows, len(s.Variables))
	for _, v := range s.Variables {
		fmt.Fprintf(w, "  %-20s hash=%d index=%d\n", v.Name, v.Hash, v.Index)
	}
}

// WriteTextPrimitiveSet writes a PrimitiveSetSummary in human-readable
// format.
func WriteTextPrimitiveSet(w io.Writer, s PrimitiveSetSummary) {
	fmt.Fprintf(w, "PrimitiveSet: %s\n", s.Name)
	for _, k := range s.Kinds {
		fmt.Fprintf(w, "  %-10s freq=%.3g arity=[%d,%d]\n", k.Kind, k.Frequency, k.MinArity, k.MaxArity)
	}
}

// WriteText writes an EvaluationSummary in human-readable format, in the
// style of the teacher's WriteTextReport.
func WriteText(w io.Writer, s EvaluationSummary) {
	fmt.Fprintf(w, "Run %s | pop %d | best %.6g | worst %.6g | mean %.6g | failed %d | fitness_evals %d | local_evals %d\n",
		s.RunID, s.PopulationSize, s.BestFitness, s.WorstFitness, s.MeanFitness,
		s.FailedEvaluations, s.FitnessEvaluations, s.LocalEvaluations)
}

// WriteJSON writes an EvaluationSummary as indented JSON, in the style of
// the teacher's WriteJSONFinal.
func WriteJSON(w io.Writer, s EvaluationSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
