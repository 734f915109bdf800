package deps

import (
	"time"

	"github.com/pinbox/pinbox/internal/logger"
	"github.com/pinbox/pinbox/internal/store"
	"github.com/pinbox/pinbox/internal/store/rediscache"
)

// Deps carries the collaborators handlers need. It is built once at
// startup and passed into each route registrar; handlers never reach for
// globals.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Store store.BookmarkStore // storage handle, constructed once at startup
	Cache *rediscache.Cache   // optional owner-list read cache, nil when Redis is not configured

	AllowedOrigin string // CORS origin served to the extension
}
