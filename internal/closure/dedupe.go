package closure

import (
	"sort"

	"github.com/opendata-browser/internal/domain"
)

// DedupeAndSort оставляет первую запись для каждого ключа дедупликации и
// сортирует результат по этому ключу. Сортировка стабильная.
func DedupeAndSort(records []domain.ClosureRecord) []domain.ClosureRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]domain.ClosureRecord, 0, len(records))
	keys := make([]string, 0, len(records))

	for _, r := range records {
		key := r.DedupeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
		keys = append(keys, key)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]] < keys[idx[j]]
	})

	sorted := make([]domain.ClosureRecord, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}
