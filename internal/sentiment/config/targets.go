package config

import "stock-sentiment-tracker/internal/entity"

// DefaultTargets is the tracked list used when the configuration provides none.
// Order defines the collector's iteration order.
func DefaultTargets() []entity.Target {
	return []entity.Target{
		{Ticker: "MSFT", Name: "Microsoft"},
		{Ticker: "AAPL", Name: "Apple Inc.", Query: `"Apple Inc." AND (stock OR finance)`},
		{Ticker: "NVDA", Name: "Nvidia"},
		{Ticker: "GOOGL", Name: "Alphabet Google"},
		{Ticker: "AMZN", Name: "Amazon"},
		{Ticker: "META", Name: "Meta Platforms"},
		{Ticker: "BRK-B", Name: "Berkshire Hathaway"},
		{Ticker: "LLY", Name: "Eli Lilly"},
		{Ticker: "TSM", Name: "TSMC"},
		{Ticker: "AVGO", Name: "Broadcom"},
		{Ticker: "NVO", Name: "Novo Nordisk"},
		{Ticker: "V", Name: "Visa"},
		{Ticker: "JPM", Name: "JPMorgan Chase"},
		{Ticker: "WMT", Name: "Walmart"},
		{Ticker: "XOM", Name: "Exxon Mobil"},
		{Ticker: "UNH", Name: "UnitedHealth Group"},
		{Ticker: "MA", Name: "Mastercard"},
		{Ticker: "TSLA", Name: "Tesla"},
		{Ticker: "PG", Name: "Procter & Gamble"},
		{Ticker: "JNJ", Name: "Johnson & Johnson"},

		{Ticker: "RELIANCE.NS", Name: "Reliance Industries"},
		{Ticker: "TCS.NS", Name: "Tata Consultancy Services"},
		{Ticker: "HDFCBANK.NS", Name: "HDFC Bank"},
		{Ticker: "ICICIBANK.NS", Name: "ICICI Bank"},
		{Ticker: "BHARTIARTL.NS", Name: "Bharti Airtel"},
		{Ticker: "SBIN.NS", Name: "State Bank of India"},
		{Ticker: "INFY.NS", Name: "Infosys"},
		{Ticker: "LICI.NS", Name: "Life Insurance Corporation of India"},
		{Ticker: "HINDUNILVR.NS", Name: "Hindustan Unilever"},
		{Ticker: "ITC.NS", Name: "ITC Limited"},
		{Ticker: "LT.NS", Name: "Larsen & Toubro"},
		{Ticker: "BAJFINANCE.NS", Name: "Bajaj Finance"},
		{Ticker: "HCLTECH.NS", Name: "HCL Technologies"},
		{Ticker: "KOTAKBANK.NS", Name: "Kotak Mahindra Bank"},
		{Ticker: "MARUTI.NS", Name: "Maruti Suzuki"},
		{Ticker: "SUNPHARMA.NS", Name: "Sun Pharmaceutical"},
		{Ticker: "ADANIENT.NS", Name: "Adani Enterprises"},
		{Ticker: "TITAN.NS", Name: "Titan Company"},
		{Ticker: "ONGC.NS", Name: "ONGC"},
		{Ticker: "TATAMOTORS.NS", Name: "Tata Motors"},
	}
}
