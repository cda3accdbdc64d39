package domain

// AccountStats is the account-level reduction of one reporting window.
type AccountStats struct {
	Wins            int
	TotalTrades     int
	StoppedOut      int
	RiskManaged     int
	TradesByAsset   map[string]int
	TradesBySession map[string]int
	PnL             float64
	ProfitFactor    float64
}
