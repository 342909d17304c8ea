package types

// UserStats summarizes one user's activity.
type UserStats struct {
	CollectionsCount             int `json:"collectionsCount"`
	MessagesCount                int `json:"messagesCount"`
	TotalPropertiesInCollections int `json:"totalPropertiesInCollections"`

	// LastActivity is the newest message timestamp, nil when the user has
	// no messages.
	LastActivity *int64 `json:"lastActivity"`
}

// PlatformStats counts entities across the whole store.
type PlatformStats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalBuyers        int `json:"totalBuyers"`
	TotalSellers       int `json:"totalSellers"`
	TotalProperties    int `json:"totalProperties"`
	FeaturedProperties int `json:"featuredProperties"`
	TotalMessages      int `json:"totalMessages"`
	TotalCollections   int `json:"totalCollections"`
}

// UserActivity holds a user's most recent messages and collections.
type UserActivity struct {
	RecentMessages    []Message    `json:"recentMessages"`
	RecentCollections []Collection `json:"recentCollections"`
}

// CollectionRef identifies a collection in PropertyAnalytics.
type CollectionRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// PropertyAnalytics reports how often a property was saved to collections.
type PropertyAnalytics struct {
	TimesAddedToCollections int             `json:"timesAddedToCollections"`
	CollectionsContaining   []CollectionRef `json:"collectionsContaining"`
}
