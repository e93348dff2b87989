package model

// Outcome is the per-file result of a pipeline run.
type Outcome string

const (
	// OutcomeUpdated means the file was rewritten.
	OutcomeUpdated Outcome = "updated"
	// OutcomeUnchanged means every submission path was already protected.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeSkipped means another invocation held the claim on the file.
	OutcomeSkipped Outcome = "skipped"
	// OutcomePending means the file needs changes but the run was a dry run.
	OutcomePending Outcome = "pending"
)

// FileReport describes what happened to a single file.
type FileReport struct {
	Path    Path     `yaml:"path"`
	Kind    FileKind `yaml:"kind"`
	Outcome Outcome  `yaml:"outcome"`
	Changes int      `yaml:"changes,omitempty"` // handlers or forms that gained the marker
	Diff    string   `yaml:"diff,omitempty"`
}

// RunReport collects the file reports of one invocation.
type RunReport struct {
	DryRun bool         `yaml:"dry_run"`
	Files  []FileReport `yaml:"files"`
}

// Count returns how many files ended with the given outcome.
func (r RunReport) Count(outcome Outcome) int {
	count := 0

	for _, file := range r.Files {
		if file.Outcome == outcome {
			count++
		}
	}

	return count
}
