package dto

import "time"

// NewsAPIResponse is the body returned by the NewsAPI "everything" endpoint.
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code,omitempty"`
	Message      string           `json:"message,omitempty"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
}

// NewsAPIArticle is one article of a NewsAPI response.
type NewsAPIArticle struct {
	Source      NewsAPISource `json:"source"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	PublishedAt time.Time     `json:"publishedAt"`
}

// NewsAPISource identifies the publisher of an article.
type NewsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
