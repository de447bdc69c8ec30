package generate

import "math/rand"

// PickWeighted draws one entry with probability proportional to its
// weight. Non-positive weights are never picked. ok is false when no entry
// has a positive weight.
func PickWeighted[T any](rng *rand.Rand, entries []T, weight func(T) int) (picked T, ok bool) {
	total := 0
	for _, e := range entries {
		if w := weight(e); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return picked, false
	}
	roll := rng.Intn(total)
	for _, e := range entries {
		w := weight(e)
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return e, true
		}
	}
	return picked, false
}
