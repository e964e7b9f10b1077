package entity

// Target is one tracked ticker/company pair.
type Target struct {
	Ticker string `mapstructure:"ticker" json:"ticker"`
	Name   string `mapstructure:"name" json:"name"`
	// Query overrides the search query for names that collide with common words.
	Query string `mapstructure:"query" json:"query,omitempty"`
}

// SearchQuery is the query used by the daily collector: the override when
// present, otherwise the display name.
func (t Target) SearchQuery() string {
	if t.Query != "" {
		return t.Query
	}
	if t.Name != "" {
		return t.Name
	}
	return t.Ticker
}

// TickerQuery is the query used by the live feed and narrative summary: the
// override when present, otherwise the raw ticker.
func (t Target) TickerQuery() string {
	if t.Query != "" {
		return t.Query
	}
	return t.Ticker
}
