package filters

// Safelists map each public sortBy value to the column the SQL stores order by.

var MovieSortSafelist = map[string]string{
	"createdAt":     "created_at",
	"title":         "title",
	"year":          "year",
	"averageRating": "average_rating",
	"totalReviews":  "total_reviews",
}

var ReviewSortSafelist = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"rating":    "rating",
}

// WatchlistSortSafelist orders the watchlist/movies join, so columns are qualified.
var WatchlistSortSafelist = map[string]string{
	"createdAt": "w.created_at",
	"title":     "m.title",
}
