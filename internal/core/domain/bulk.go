package domain

// StageChange is the outcome of moving one candidate to a new stage.
type StageChange struct {
	Candidate     Candidate        `json:"candidate"`
	OldStage      Stage            `json:"oldStage"`
	Transition    *StageTransition `json:"transition,omitempty"` // Nil when the stage did not change
	Journal       *Journal         `json:"journal,omitempty"`    // The candidate's deployment journal when the move entered DEPLOYED
	JournalPosted bool             `json:"journalPosted"`        // False when Journal was posted by an earlier deployment
}

// Deployed reports whether this change was the candidate's entry into DEPLOYED.
func (s StageChange) Deployed() bool {
	return s.OldStage != StageDeployed && s.Candidate.CurrentStage == StageDeployed
}

// BulkFailure records why one item of a bulk operation was not applied.
type BulkFailure struct {
	CandidateID string `json:"candidateID"`
	Error       string `json:"error"`
}

// BulkStageResult summarises a bulk stage move.
type BulkStageResult struct {
	Updated  int           `json:"updated"`
	Deployed int           `json:"deployed"`
	Total    int           `json:"total"`
	Failures []BulkFailure `json:"failures"`
}

// BulkCostResult summarises a bulk cost creation.
type BulkCostResult struct {
	Created  int           `json:"created"`
	Total    int           `json:"total"`
	Failures []BulkFailure `json:"failures"`
}
