package scale

import "math"

const niceIterations = 10

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear returns a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps v from the domain to the range. A zero-width domain maps every
// value to the start of the range.
func (s Linear) Apply(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	if d1 == d0 || math.IsNaN(d1-d0) {
		return s.Range[0]
	}
	t := (v - d0) / (d1 - d0)
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Nice extends the domain outward to round values so that it starts and ends
// on ticks for roughly count ticks. The domain is left alone when no stable
// step is found.
func (s Linear) Nice(count int) Linear {
	start, stop := s.Domain[0], s.Domain[1]
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	var prestep float64
	for i := 0; i < niceIterations; i++ {
		step := TickIncrement(start, stop, float64(count))
		if step == prestep {
			if reverse {
				start, stop = stop, start
			}
			s.Domain = [2]float64{start, stop}
			return s
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s
		}
		prestep = step
	}
	return s
}

// Ticks returns roughly count round values within the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], float64(count))
}

// MaxTicks returns the ticks for the largest hint not above limit that yields at
// most limit ticks. The tick algorithm treats its count as a hint and may
// overshoot it by one or two.
func (s Linear) MaxTicks(limit int) []float64 {
	for hint := limit; hint > 1; hint-- {
		ticks := s.Ticks(hint)
		if len(ticks) <= limit {
			return ticks
		}
	}
	ticks := s.Ticks(1)
	if len(ticks) > limit {
		return ticks[:limit]
	}
	return ticks
}
