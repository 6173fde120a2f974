package core

// The admin store exposes flat tables only; related rows are resolved
// client-side with batch lookups instead of per-screen map-building code.

// CollectKeys extracts the non-zero foreign keys of `rows`, de-duplicated,
// in first-seen order.
func CollectKeys[R any, K comparable](rows []R, keyOf func(R) K) []K {
	var zero K
	seen := make(map[K]struct{}, len(rows))
	keys := make([]K, 0, len(rows))
	for _, row := range rows {
		k := keyOf(row)
		if k == zero {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// BatchResolve fetches the related rows for `keys` in a single call and
// returns them as a key -> row lookup map. A missing key simply has no entry.
func BatchResolve[K comparable, V any](keys []K, fetch func([]K) ([]V, error), keyOf func(V) K) (map[K]V, error) {
	lookup := make(map[K]V, len(keys))
	if len(keys) == 0 {
		return lookup, nil
	}
	rows, err := fetch(keys)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		lookup[keyOf(row)] = row
	}
	return lookup, nil
}
