package market

// Quote is one priced instrument on the terminal ticker. Forex pairs carry a
// pip increment used by the simulated walk; crypto quotes move relative to
// price.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change24h"`
	Pip    float64 `json:"pip,omitempty"`
	Forex  bool    `json:"forex,omitempty"`
}

// Venue is a simulated execution venue presented on the trade surface.
type Venue struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Fee    string `json:"fee"`
	Status string `json:"status"`
}

// SeedQuotes is the opening board.
func SeedQuotes() []Quote {
	return []Quote{
		{Symbol: "BTC", Price: 68420.50, Change: 2.45},
		{Symbol: "ETH", Price: 3450.12, Change: -1.20},
		{Symbol: "SOL", Price: 145.88, Change: 5.67},
		{Symbol: "PLTO", Price: 1.00, Change: 0.0},
		{Symbol: "EUR/USD", Price: 1.0842, Change: 0.12, Pip: 0.0001, Forex: true},
		{Symbol: "GBP/USD", Price: 1.2654, Change: -0.05, Pip: 0.0002, Forex: true},
		{Symbol: "USD/JPY", Price: 150.32, Change: 0.45, Pip: 0.0001, Forex: true},
		{Symbol: "AUD/USD", Price: 0.6542, Change: -0.18, Pip: 0.0001, Forex: true},
	}
}

// Venues lists the simulated execution venues.
func Venues() []Venue {
	return []Venue{
		{ID: "binance", Name: "Binance", Fee: "0.1%", Status: "Stable"},
		{ID: "coinbase", Name: "Coinbase Pro", Fee: "0.5%", Status: "Stable"},
		{ID: "kraken", Name: "Kraken", Fee: "0.26%", Status: "High Volume"},
		{ID: "pluto_dex", Name: "Pluto DEX", Fee: "0.05%", Status: "Optimal"},
	}
}
