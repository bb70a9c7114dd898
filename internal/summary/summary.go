package summary

import "github.com/tinytelemetry/pawprefs/internal/model"

// Summary is the swiped history partitioned by classification.
type Summary struct {
	Liked    []model.Item
	Disliked []model.Item
}

// Partition splits history into liked and disliked groups, keeping history
// order within each group. Unset items are not expected and are skipped.
func Partition(history []model.Item) Summary {
	var s Summary
	for _, it := range history {
		switch it.Classification {
		case model.Liked:
			s.Liked = append(s.Liked, it)
		case model.Disliked:
			s.Disliked = append(s.Disliked, it)
		}
	}
	return s
}

// Total returns the number of classified items.
func (s Summary) Total() int { return len(s.Liked) + len(s.Disliked) }

// Counts returns the group sizes.
func (s Summary) Counts() (liked, disliked int) {
	return len(s.Liked), len(s.Disliked)
}
