package domain

// BookmarkUpdate carries a partial update where each field is either
// present (non-nil) or absent. The storage layer translates only the
// present fields into the parameterized update; absent fields are left
// untouched on the stored row.
type BookmarkUpdate struct {
	URL           *string   `json:"url,omitempty"`
	Img           *string   `json:"img,omitempty"`
	Title         *string   `json:"title,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	SourcePageURL *string   `json:"sourcePageUrl,omitempty"`
}

// Empty reports whether no updatable field is present.
func (u *BookmarkUpdate) Empty() bool {
	return u.URL == nil && u.Img == nil && u.Title == nil &&
		u.Tags == nil && u.SourcePageURL == nil
}

// Apply overwrites the present fields on b. Used by in-memory collections;
// the SQL store builds its own SET clause instead.
func (u *BookmarkUpdate) Apply(b *Bookmark) {
	if u.URL != nil {
		b.URL = *u.URL
	}
	if u.Img != nil {
		b.Img = *u.Img
	}
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Tags != nil {
		b.Tags = *u.Tags
	}
	if u.SourcePageURL != nil {
		b.SourcePageURL = *u.SourcePageURL
	}
}
