package engine

// Sample returns min(n, len(items)) items.
// When every item fits, the input order is kept and no randomness is used.
// Otherwise n items are drawn without replacement in draw order, reproducibly
// for the same (items, n, seed).
func Sample[T any](items []T, n int, seed int64) []T {
	if len(items) == 0 || n <= 0 {
		return []T{}
	}
	if len(items) <= n {
		return append([]T(nil), items...)
	}

	// Partial Fisher-Yates over an index permutation; items stays untouched.
	rng := newRand(seed)
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, items[idx[i]])
	}
	return out
}
