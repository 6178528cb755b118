package entities

// SkippedByUserMessage marks an outcome the operator declined during an
// interactive run. It is the only ErrorMessage value that does not count
// toward the failed total.
const SkippedByUserMessage = "Skipped by user"

// UpdateResult is the terminal record of what happened to one update
// candidate. Created by the decision protocol, consumed by the summary;
// never mutated after creation.
type UpdateResult struct {
	PackageName  string
	OldVersion   string
	NewVersion   string
	FilePath     string
	Success      bool
	ErrorMessage string
}

// Skipped reports whether this result was declined by the operator.
func (r UpdateResult) Skipped() bool {
	return !r.Success && r.ErrorMessage == SkippedByUserMessage
}

// Failed reports whether this result represents a mutation failure.
func (r UpdateResult) Failed() bool {
	return !r.Success && r.ErrorMessage != "" && r.ErrorMessage != SkippedByUserMessage
}

// UpdateSummary aggregates every UpdateResult produced by one run.
// Total == Updated + Failed + Skipped holds for every summary because
// Skipped is derived from the other counters rather than counted.
type UpdateSummary struct {
	Total   int
	Updated int
	Failed  int
	Skipped int
	Results []UpdateResult
}

// NewUpdateSummary folds an ordered result sequence into a summary.
func NewUpdateSummary(results []UpdateResult) *UpdateSummary {
	summary := &UpdateSummary{
		Total:   len(results),
		Results: results,
	}

	for _, result := range results {
		if result.Success {
			summary.Updated++
		} else if result.Failed() {
			summary.Failed++
		}
	}
	summary.Skipped = summary.Total - summary.Updated - summary.Failed

	return summary
}

// SuccessRate returns the percentage of candidates that were updated,
// or 0 when the run had no candidates.
func (s *UpdateSummary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Updated) / float64(s.Total) * 100 //nolint:mnd // percentage
}
