package style

import "time"

// Favorite is a user-saved, immutable copy of a past analysis result.
//
// Favorites belong exclusively to the user who created them. They are
// never edited after creation, only deleted (singly or in bulk).
type Favorite struct {
	ID        int64
	UserID    int64
	Analysis  string
	Mode      Mode
	CreatedAt time.Time
}
