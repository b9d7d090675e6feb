package news

import "sort"

// DedupeAndRank orders items by publish time (newest first) and drops every
// duplicate canonical link after its first occurrence. The sort is stable, so
// items with equal publish times keep their insertion order and the survivor
// of a duplicate link is the most recent one (first-seen on ties). Items with
// an empty link are never deduplicated against each other: each is treated as
// unique. The result is truncated to max items.
func DedupeAndRank(items []Item, max int) []Item {
	ranked := make([]Item, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
	})

	seen := make(map[string]struct{}, len(ranked))
	unique := ranked[:0]
	for _, item := range ranked {
		if item.Link != "" {
			if _, dup := seen[item.Link]; dup {
				continue
			}
			seen[item.Link] = struct{}{}
		}
		unique = append(unique, item)
	}

	if len(unique) > max {
		unique = unique[:max]
	}
	return unique
}
