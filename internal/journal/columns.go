package journal

// Column names of the rendered tables. Aggregated and detailed views share
// most of them.
const (
	ColSymbol         = "Symbol"
	ColType           = "Type"
	ColAction         = "Action"
	ColSide           = "Side"
	ColQuantity       = "Quantity"
	ColEntryPrice     = "Entry Price"
	ColEntryDate      = "Entry Date"
	ColExitPrice      = "Exit Price"
	ColClosedDate     = "Closed Date"
	ColDuration       = "Duration"
	ColGrossProfit    = "Gross Profit"
	ColRealizedProfit = "Realized Profit"
	ColWalletBalance  = "Wallet Balance"
	ColROIPercent     = "ROI(%)"
	ColFee            = "Fee"
	ColFeeRate        = "Fee Rate"
	ColClosedSize     = "Closed Size"
	ColIsClosed       = "Is Closed"
	ColSLSet          = "SL Set"
	ColSLTriggered    = "SL Triggered"
	ColTPSet          = "TP Set"
	ColTakeProfits    = "Take Profits"
	ColTradeStatus    = "Trade Status"
	ColRiskTaken      = "Risk Taken"
	ColRiskManaged    = "Risk Managed"
	ColStoppedOut     = "Stopped Out"
	ColSession        = "Session"
	ColAttachments    = "Attachments"
	ColConfluence     = "Confluence"
	ColRemarks        = "Remarks"
)

// AggregatedViewColumns is the default per-trade table layout.
var AggregatedViewColumns = []string{
	ColSymbol,
	ColSide,
	ColIsClosed,
	ColStoppedOut,
	ColRiskManaged,
	ColTradeStatus,
	ColQuantity,
	ColSession,
	ColEntryPrice,
	ColEntryDate,
	ColExitPrice,
	ColClosedDate,
	ColDuration,
	ColSLSet,
	ColSLTriggered,
	ColTakeProfits,
	ColRiskTaken,
	ColGrossProfit,
	ColRealizedProfit,
	ColAttachments,
	ColConfluence,
	ColRemarks,
}

// DetailedViewColumns is the default per-execution table layout.
var DetailedViewColumns = []string{
	ColSymbol,
	ColType,
	ColAction,
	ColSide,
	ColQuantity,
	ColEntryPrice,
	ColEntryDate,
	ColGrossProfit,
	ColRealizedProfit,
	ColWalletBalance,
	ColROIPercent,
	ColConfluence,
	ColRemarks,
}

var columnDescriptions = map[string]string{
	ColSymbol:         "The trading pair associated with the trade",
	ColType:           "The order type of the action taken",
	ColAction:         "Action performed (New Order, Stop Loss or Take Profit triggered)",
	ColSide:           "Side (Short or Long) of the action taken",
	ColQuantity:       "The total accumulated size of a trade throughout its _Duration_",
	ColEntryPrice:     "The initial entry price level of a trade",
	ColEntryDate:      "Date of the first entry for a given trade's _Side_ and _Symbol_ (until closed)",
	ColExitPrice:      "Average exit price across every close, weighted by closed size",
	ColClosedDate:     "Date the position was fully closed, empty while ongoing",
	ColDuration:       "Time elapsed between the entry and the close (or now, if ongoing)",
	ColGrossProfit:    "Overall profit from the trade without accounting for funding nor trading fees",
	ColRealizedProfit: "Overall profit realized from the trade including funding rates and trading fees",
	ColWalletBalance:  "Total account balance at the time of the trade/action taken",
	ColROIPercent:     "Realized return in percentual terms",
	ColFee:            "Fee cost amount associated with the trade/action taken",
	ColFeeRate:        "Fee rate (%) associated with trade/action total value",
	ColClosedSize:     "Size/amount closed (when a Take Profit/Stop Loss gets triggered)",
	ColIsClosed:       "Whether the position has been fully closed",
	ColSLSet:          "The initial/pre-set _Stop Loss_ when the trade was executed",
	ColSLTriggered:    "The price at which the stop loss that fully closed the trade triggered",
	ColTPSet:          "The initial/pre-set _Take Profit_ when the trade was executed",
	ColTakeProfits:    "Every take profit price taken throughout the trade",
	ColTradeStatus:    "Whether the trade resulted in a win or a loss",
	ColRiskTaken:      "Fraction of the account balance a full stop-out would have cost",
	ColRiskManaged:    "Whether the risk taken stayed within the configured threshold",
	ColStoppedOut:     "Whether the trade was closed by its stop loss",
	ColSession:        "Trading session(s) active when the trade was opened",
	ColAttachments:    "Attachments to provide additional context/confluence on why a trade was taken",
	ColConfluence:     "Confluence reasoning as to why a trade/action was taken",
	ColRemarks:        "An explanation as to why a trade/action was taken",
}
