package progress

import "time"

// Bounds of the rolling estimation window. Samples beyond either bound are
// evicted oldest-first when a new sample is recorded.
const (
	maxSamples   = 1000
	sampleWindow = 30 * time.Second
)

// sampleSpeed estimates throughput from the retained sample window as the
// completed delta between the oldest and newest samples over their time span.
// It needs at least two samples spanning more than zero time; otherwise the
// speed is unknown. A caller-driven decrease in completed passes through and
// may yield a negative speed, which renderers treat as unknown.
func sampleSpeed(samples []Sample) (float64, bool) {
	if len(samples) < 2 {
		return 0, false
	}
	oldest := samples[0]
	newest := samples[len(samples)-1]
	span := newest.Time.Sub(oldest.Time).Seconds()
	if span <= 0 {
		return 0, false
	}
	return (newest.Completed - oldest.Completed) / span, true
}

// trimSamples drops samples that fall outside the window ending at now,
// oldest first. The newest sample is always retained.
func trimSamples(samples []Sample, now time.Time) []Sample {
	cutoff := now.Add(-sampleWindow)
	start := 0
	for start < len(samples)-1 && samples[start].Time.Before(cutoff) {
		start++
	}
	if over := len(samples) - start - maxSamples; over > 0 {
		start += over
	}
	if start == 0 {
		return samples
	}
	return append(samples[:0], samples[start:]...)
}
