package paper

// Review is the structured analysis of one paper. Sections may be
// empty; the analysis service returns empty strings for sections it
// could not fill.
type Review struct {
	Summary     string
	Novelty     string
	Methodology string
	Validation  string
	Discussion  string
	NextSteps   string
}

// ReviewSection is one named section of a review.
type ReviewSection struct {
	ID   string
	Text string
}

// Sections returns the review sections in canonical display order.
func (r Review) Sections() []ReviewSection {
	return []ReviewSection{
		{ID: "summary", Text: r.Summary},
		{ID: "novelty", Text: r.Novelty},
		{ID: "methodology", Text: r.Methodology},
		{ID: "validation", Text: r.Validation},
		{ID: "discussion", Text: r.Discussion},
		{ID: "next_steps", Text: r.NextSteps},
	}
}
