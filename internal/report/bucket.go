package report

import "sort"

// WeightMinUnset is the starting minimum weight of a bucket,
// any real observation replaces it.
const WeightMinUnset = 1024.0

type ActivityTotal struct {
	DistanceKm      float64
	DurationSeconds int
}

// Bucket summarizes one year, month or ISO week: distance and duration per
// activity plus the body weight range seen across all activities.
type Bucket struct {
	Activities map[string]*ActivityTotal
	WeightMin  float64
	WeightMax  float64
}

func newBucket() *Bucket {
	return &Bucket{
		Activities: make(map[string]*ActivityTotal),
		WeightMin:  WeightMinUnset,
		WeightMax:  0,
	}
}

func (b *Bucket) observe(activity string, m measurement) {
	total, ok := b.Activities[activity]
	if !ok {
		total = &ActivityTotal{}
		b.Activities[activity] = total
	}

	if m.hasKm {
		total.DistanceKm += m.km
	}
	if m.hasTime {
		total.DurationSeconds += m.seconds
	}
	if m.hasWeight {
		b.WeightMin = min(b.WeightMin, m.kg)
		b.WeightMax = max(b.WeightMax, m.kg)
	}
}

// Activity returns the totals of the activity, zero when it never
// appeared in this bucket.
func (b *Bucket) Activity(name string) ActivityTotal {
	if b == nil {
		return ActivityTotal{}
	}
	if total, ok := b.Activities[name]; ok {
		return *total
	}
	return ActivityTotal{}
}

func (b *Bucket) HasWeight() bool {
	return b != nil && b.WeightMin < WeightMinUnset
}

func (b *Bucket) TotalKm() float64 {
	if b == nil {
		return 0
	}
	var km float64
	for _, total := range b.Activities {
		km += total.DistanceKm
	}
	return km
}

func (b *Bucket) TotalSeconds() int {
	if b == nil {
		return 0
	}
	var secs int
	for _, total := range b.Activities {
		secs += total.DurationSeconds
	}
	return secs
}

// ActivityNames returns the activities of the bucket, sorted.
func (b *Bucket) ActivityNames() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.Activities))
	for name := range b.Activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
