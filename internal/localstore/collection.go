package localstore

import (
	"github.com/pinbox/pinbox/internal/domain"
)

// Add appends b to items unless an entry with the same image/url pair is
// already present. It returns the (possibly unchanged) collection and
// whether b was actually added.
func Add(items []domain.Bookmark, b domain.Bookmark) ([]domain.Bookmark, bool) {
	for i := range items {
		if domain.SameMedia(&items[i], &b) {
			return items, false
		}
	}
	return append(items, b), true
}

// MergeRemote folds remote items into the local collection. Matching is by
// id; on conflict the local entry wins, so a merge never overwrites local
// state. Returns the merged collection and the number of items adopted
// from remote.
func MergeRemote(local, remote []domain.Bookmark) ([]domain.Bookmark, int) {
	seen := make(map[string]struct{}, len(local))
	for _, b := range local {
		seen[b.ID] = struct{}{}
	}

	added := 0
	for _, b := range remote {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		local = append(local, b)
		seen[b.ID] = struct{}{}
		added++
	}
	return local, added
}

// BulkEdit applies the same edit to every bookmark whose id is in ids:
// a non-nil title or img overwrites the field, addTags are unioned into
// the existing tags. Edited entries get a fresh updated_at. Returns the
// number of entries touched; ids with no matching entry are skipped.
func BulkEdit(items []domain.Bookmark, ids []string, title, img *string, addTags []string) int {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	u := domain.BookmarkUpdate{Title: title, Img: img}
	edited := 0
	for i := range items {
		if _, ok := idSet[items[i].ID]; !ok {
			continue
		}
		u.Apply(&items[i])
		if len(addTags) > 0 {
			items[i].Tags = domain.UnionTags(items[i].Tags, addTags)
		}
		items[i].UpdatedAt = domain.NowMillis()
		edited++
	}
	return edited
}

// BulkDelete removes every bookmark whose id is in ids and returns the
// remaining collection plus the number of entries removed.
func BulkDelete(items []domain.Bookmark, ids []string) ([]domain.Bookmark, int) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	kept := items[:0]
	removed := 0
	for _, b := range items {
		if _, ok := idSet[b.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	return kept, removed
}
