package domain

// UpdateReport summarizes one regeneration pass over the generated suite.
type UpdateReport struct {
	Written   []string // files created or rewritten
	Unchanged []string // files whose rendered content matched what was on disk
	Pruned    []string // generated files removed because their resource vanished
	Skipped   []string // files under the generated root without the header, left alone
	Renamed   []string // test cases renamed to avoid clashing with custom case names
}

// Changed reports whether the pass modified the generated suite at all.
func (r UpdateReport) Changed() bool {
	return len(r.Written) > 0 || len(r.Pruned) > 0
}

// SeedResult represents the outcome of seeding one worker database
type SeedResult struct {
	WorkerID int
	Database string
	Success  bool
	Output   string
	Error    error
}
