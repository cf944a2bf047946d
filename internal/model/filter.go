package model

// FilterState is the conjunctive filter over the loaded record set. A zero
// field is a wildcard; the zero value matches everything.
type FilterState struct {
	SearchText string `json:"search_text,omitempty"`
	Year       int    `json:"year,omitempty"`
	Design     string `json:"design,omitempty"`
	Condition  string `json:"condition,omitempty"`
}

// IsZero reports whether every filter field is unset.
func (s FilterState) IsZero() bool {
	return s == FilterState{}
}

// Bucket is one (label, count) pair of a categorical aggregation.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryBucket is an aggregation result, sorted by count descending with
// ties kept in first-seen order. Sentinel labels never appear.
type CategoryBucket []Bucket

// Labels returns the bucket labels in order.
func (c CategoryBucket) Labels() []string {
	labels := make([]string, len(c))
	for i, b := range c {
		labels[i] = b.Label
	}
	return labels
}

// Counts returns the bucket counts in order.
func (c CategoryBucket) Counts() []float64 {
	counts := make([]float64, len(c))
	for i, b := range c {
		counts[i] = float64(b.Count)
	}
	return counts
}

// Total returns the sum of all bucket counts.
func (c CategoryBucket) Total() int {
	var n int
	for _, b := range c {
		n += b.Count
	}
	return n
}
