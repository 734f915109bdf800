package seedfile

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/pinbox/pinbox/internal/domain"
)

// Mapper converts seed file entries to domain bookmarks.
type Mapper struct{}

// NewMapper creates a new seed mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapBookmarks converts a parsed seed file to a bookmark slice owned by
// userID. Entries without a url or img are skipped; a file yielding no
// valid entries is an error so a typo'd seed file fails loudly.
func (m *Mapper) MapBookmarks(config *Config, userID string) ([]domain.Bookmark, error) {
	bookmarks := make([]domain.Bookmark, 0, len(config.Bookmarks))
	now := domain.NowMillis()

	for _, entry := range config.Bookmarks {
		if entry.URL == "" || entry.Img == "" {
			continue
		}

		bookmarks = append(bookmarks, domain.Bookmark{
			ID:            xid.New().String(),
			UserID:        userID,
			URL:           entry.URL,
			Img:           entry.Img,
			Title:         entry.Title,
			Tags:          domain.NormalizeTags(entry.Tags),
			SourcePageURL: entry.SourcePage,
			CreatedAt:     now,
		})
	}

	if len(bookmarks) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in seed file")
	}

	return bookmarks, nil
}
