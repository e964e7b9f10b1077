package entity

// LiveSnapshot is one push of the live sentiment feed.
type LiveSnapshot struct {
	AverageSentiment float64 `json:"averageSentiment"`
	ArticleCount     int     `json:"articleCount"`
}
