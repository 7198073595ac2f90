package scale

import "math"

// Band maps discrete keys onto evenly spaced, padded intervals of a range.
type Band struct {
	Domain       []string
	Range        [2]float64
	PaddingInner float64
	PaddingOuter float64
	Align        float64

	index map[string]int
}

// NewBand returns a centred band scale. Keys repeated in domain map to their
// first position.
func NewBand(domain []string, r0, r1, paddingInner, paddingOuter float64) Band {
	index := make(map[string]int, len(domain))
	for i, key := range domain {
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return Band{
		Domain:       domain,
		Range:        [2]float64{r0, r1},
		PaddingInner: clamp01(paddingInner),
		PaddingOuter: paddingOuter,
		Align:        0.5,
		index:        index,
	}
}

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 {
	n := float64(len(b.Domain))
	span := math.Abs(b.Range[1] - b.Range[0])
	return span / math.Max(1, n-b.PaddingInner+b.PaddingOuter*2)
}

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 {
	return b.Step() * (1 - b.PaddingInner)
}

// At returns the start of the i-th band.
func (b Band) At(i int) float64 {
	n := float64(len(b.Domain))
	start, stop := b.Range[0], b.Range[1]
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	step := b.Step()
	start += (stop - start - step*(n-b.PaddingInner)) * b.Align
	if reverse {
		return start + step*(n-1-float64(i))
	}
	return start + step*float64(i)
}

// Position returns the start of the band for key.
func (b Band) Position(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.At(i), true
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
