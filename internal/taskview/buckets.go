package taskview

import "github.com/sandeepkv93/todod/internal/model"

type Bucket string

const (
	BucketToday    Bucket = "Today"
	BucketTomorrow Bucket = "Tomorrow"
	BucketUpcoming Bucket = "Upcoming"
)

var bucketOrder = []Bucket{BucketToday, BucketTomorrow, BucketUpcoming}

// BucketFor places day relative to reference. Past days are Upcoming; there
// is no overdue bucket.
func BucketFor(day, reference model.Date) Bucket {
	switch day {
	case reference:
		return BucketToday
	case reference.AddDays(1):
		return BucketTomorrow
	default:
		return BucketUpcoming
	}
}

type TaskGroup struct {
	Bucket Bucket       `json:"bucket"`
	Tasks  []model.Task `json:"tasks"`
}

// GroupByDay partitions tasks with a due date into Today, Tomorrow and
// Upcoming, in that order. Empty groups are omitted and undated tasks are
// dropped.
func GroupByDay(tasks []model.Task, reference model.Date) []TaskGroup {
	byBucket := make(map[Bucket][]model.Task, len(bucketOrder))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		b := BucketFor(*t.DueDate, reference)
		byBucket[b] = append(byBucket[b], t)
	}
	out := make([]TaskGroup, 0, len(bucketOrder))
	for _, b := range bucketOrder {
		if items := byBucket[b]; len(items) > 0 {
			out = append(out, TaskGroup{Bucket: b, Tasks: items})
		}
	}
	return out
}
