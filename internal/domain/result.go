package domain

// FetchResult is the settled outcome of one endpoint request. On success the
// payload field matching Category is set; on failure only Err is set. Exactly
// one result exists per category per load cycle.
type FetchResult struct {
	Category Category
	Status   *NodeStatus
	Rewards  *RewardSummary
	Payouts  []Payout
	Claims   []ClaimCode
	Err      error
}

// Failed reports whether the request settled with an error.
func (r FetchResult) Failed() bool {
	return r.Err != nil
}
