package catalog

import (
	"sort"
	"strings"
	"time"
)

func now() time.Time {
	return time.Now().UTC()
}

// NormalizeTags trims, drops empties, and deduplicates while keeping order.
func NormalizeTags(xs []string) []string {
	out := make([]string, 0, len(xs))
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}

func toSet(xs []string) map[string]struct{} {
	m := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		m[x] = struct{}{}
	}
	return m
}

func setToSlice(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func filterIDs(ids []DefID, keep func(DefID) bool) []DefID {
	dst := ids[:0]
	for _, id := range ids {
		if keep(id) {
			dst = append(dst, id)
		}
	}
	return dst
}
