package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vitos/trade_journal/internal/domain"
)

const (
	BybitBaseURL = "https://api.bybit.com"

	transactionLogPath = "/v5/account/transaction-log"
	executionListPath  = "/v5/execution/list"
	orderHistoryPath   = "/v5/order/history"

	// Bybit caps the queryable time range per request.
	maxWindow = 7 * 24 * time.Hour

	pageLimit = 50
)

// BybitAdapter pulls the account's trading history from the Bybit v5 REST
// API: the transaction log, the execution list and the order history. The
// three datasets are merged on the order id and mapped into typed rows, so
// the core never touches exchange-native payloads.
type BybitAdapter struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	recvWindow int
	client     *http.Client
	log        *zap.Logger
}

func NewBybitAdapter(apiKey, apiSecret, baseURL string, recvWindow int, log *zap.Logger) (*BybitAdapter, error) {
	if apiKey == "" || apiSecret == "" {
		missing := "api key"
		if apiKey != "" {
			missing = "api secret"
		}
		return nil, fmt.Errorf("unable to set up the Bybit adapter: missing %s", missing)
	}
	return &BybitAdapter{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    baseURL,
		recvWindow: recvWindow,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}, nil
}

// --- REST plumbing ---

func (b *BybitAdapter) sign(params string, timestamp int64) string {
	// timestamp + apiKey + recvWindow + params
	toSign := fmt.Sprintf("%d%s%d%s", timestamp, b.apiKey, b.recvWindow, params)
	h := hmac.New(sha256.New, []byte(b.apiSecret))
	h.Write([]byte(toSign))
	return hex.EncodeToString(h.Sum(nil))
}

func (b *BybitAdapter) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	timestamp := time.Now().UnixMilli()
	encoded := query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path+"?"+encoded, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-BAPI-API-KEY", b.apiKey)
	req.Header.Set("X-BAPI-TIMESTAMP", strconv.FormatInt(timestamp, 10))
	req.Header.Set("X-BAPI-SIGN", b.sign(encoded, timestamp))
	req.Header.Set("X-BAPI-RECV-WINDOW", strconv.Itoa(b.recvWindow))

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error: %s", string(respBody))
	}

	return respBody, nil
}

type listResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		List           []json.RawMessage `json:"list"`
		NextPageCursor string            `json:"nextPageCursor"`
	} `json:"result"`
}

// fetchPaginated walks one endpoint across the reporting window, split into
// chunks the API accepts, following the page cursor inside each chunk. An
// unexpected retCode ends the walk with whatever was gathered so far.
func (b *BybitAdapter) fetchPaginated(ctx context.Context, path string, start, end time.Time) ([]json.RawMessage, error) {
	var records []json.RawMessage

	for chunkStart := start; chunkStart.Before(end); {
		chunkEnd := chunkStart.Add(maxWindow)
		if chunkEnd.After(end) {
			chunkEnd = end
		}

		cursor := ""
		for {
			query := url.Values{}
			query.Set("category", "linear")
			query.Set("limit", strconv.Itoa(pageLimit))
			query.Set("startTime", strconv.FormatInt(chunkStart.UnixMilli(), 10))
			query.Set("endTime", strconv.FormatInt(chunkEnd.UnixMilli(), 10))
			if cursor != "" {
				query.Set("cursor", cursor)
			}

			body, err := b.get(ctx, path, query)
			if err != nil {
				return nil, err
			}

			var resp listResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, fmt.Errorf("unable to decode %s response: %w", path, err)
			}
			if resp.RetCode != 0 {
				b.log.Warn("unable to process request",
					zap.String("path", path),
					zap.Int("retCode", resp.RetCode),
					zap.String("retMsg", resp.RetMsg))
				return records, nil
			}

			records = append(records, resp.Result.List...)
			cursor = resp.Result.NextPageCursor
			if cursor == "" {
				break
			}
		}

		chunkStart = chunkEnd
	}

	return records, nil
}

// --- dataset records ---

type rawTransaction struct {
	Symbol          string `json:"symbol"`
	Side            string `json:"side"`
	Type            string `json:"type"`
	OrderID         string `json:"orderId"`
	TradeID         string `json:"tradeId"`
	CashFlow        string `json:"cashFlow"`
	Change          string `json:"change"`
	CashBalance     string `json:"cashBalance"`
	Fee             string `json:"fee"`
	FeeRate         string `json:"feeRate"`
	Size            string `json:"size"`
	TransactionTime string `json:"transactionTime"`
}

type rawExecution struct {
	Symbol     string `json:"symbol"`
	OrderID    string `json:"orderId"`
	ExecID     string `json:"execId"`
	OrderType  string `json:"orderType"`
	CreateType string `json:"createType"`
	ExecType   string `json:"execType"`
	ExecPrice  string `json:"execPrice"`
	ExecQty    string `json:"execQty"`
	ClosedSize string `json:"closedSize"`
	ExecTime   string `json:"execTime"`
}

type rawOrder struct {
	OrderID    string `json:"orderId"`
	Symbol     string `json:"symbol"`
	OrderType  string `json:"orderType"`
	CreateType string `json:"createType"`
	StopLoss   string `json:"stopLoss"`
	TakeProfit string `json:"takeProfit"`
}

func decodeRecords[T any](records []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, raw := range records {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// --- fetch & merge ---

// FetchRows implements domain.HistoryProvider. The three datasets are fetched
// concurrently, merged on the order id, filtered down to genuine trade
// executions and mapped into typed rows sorted ascending by execution date.
func (b *BybitAdapter) FetchRows(ctx context.Context, start, end time.Time) ([]domain.ExecutionRow, error) {
	var (
		wg        sync.WaitGroup
		rawTxns   []json.RawMessage
		rawExecs  []json.RawMessage
		rawOrders []json.RawMessage
		errs      [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rawTxns, errs[0] = b.fetchPaginated(ctx, transactionLogPath, start, end)
	}()
	go func() {
		defer wg.Done()
		rawExecs, errs[1] = b.fetchPaginated(ctx, executionListPath, start, end)
	}()
	go func() {
		defer wg.Done()
		rawOrders, errs[2] = b.fetchPaginated(ctx, orderHistoryPath, start, end)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	txns, err := decodeRecords[rawTransaction](rawTxns)
	if err != nil {
		return nil, fmt.Errorf("unable to decode transaction log: %w", err)
	}
	execs, err := decodeRecords[rawExecution](rawExecs)
	if err != nil {
		return nil, fmt.Errorf("unable to decode execution list: %w", err)
	}
	orders, err := decodeRecords[rawOrder](rawOrders)
	if err != nil {
		return nil, fmt.Errorf("unable to decode order history: %w", err)
	}

	return b.merge(txns, execs, orders), nil
}

// merge joins the transaction log against the execution list on the trade id
// and against the order history on the order id. Rows that cannot be matched
// across all three datasets are duplicate anomalies or automatically removed
// orders and are skipped.
func (b *BybitAdapter) merge(txns []rawTransaction, execs []rawExecution, orders []rawOrder) []domain.ExecutionRow {
	execsByID := make(map[string]rawExecution, len(execs))
	for _, e := range execs {
		execsByID[e.ExecID] = e
	}
	ordersByID := make(map[string]rawOrder, len(orders))
	for _, o := range orders {
		ordersByID[o.OrderID] = o
	}

	rows := make([]domain.ExecutionRow, 0, len(txns))
	for _, txn := range txns {
		exec, ok := execsByID[txn.TradeID]
		if !ok || exec.OrderID != txn.OrderID {
			b.log.Debug("transaction with no matching execution",
				zap.String("orderId", txn.OrderID), zap.String("tradeId", txn.TradeID))
			continue
		}
		if exec.ExecType != "Trade" {
			// funding, settlement and the like
			continue
		}
		order, ok := ordersByID[txn.OrderID]
		if !ok {
			b.log.Debug("transaction with no matching order",
				zap.String("orderId", txn.OrderID))
			continue
		}

		createType := exec.CreateType
		if createType == "" {
			createType = order.CreateType
		}

		rows = append(rows, domain.ExecutionRow{
			Symbol:         txn.Symbol,
			OrderType:      exec.OrderType,
			Side:           mapSide(txn.Side),
			CreateType:     createType,
			ExecPrice:      parseFloat(exec.ExecPrice),
			ExecDate:       msToTime(txn.TransactionTime),
			Quantity:       parseFloat(exec.ExecQty),
			ClosedSize:     parseFloat(exec.ClosedSize),
			RemainingSize:  parseFloat(txn.Size),
			StopLoss:       optFloat(order.StopLoss),
			TakeProfit:     optFloat(order.TakeProfit),
			Fee:            parseFloat(txn.Fee),
			FeeRate:        parseFloat(txn.FeeRate),
			GrossProfit:    parseFloat(txn.CashFlow),
			RealizedProfit: parseFloat(txn.Change),
			AccountBalance: optFloat(txn.CashBalance),
			TradeGroup:     domain.GroupOrphan,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ExecDate.Before(rows[j].ExecDate)
	})
	return rows
}

func mapSide(side string) domain.Side {
	switch side {
	case "Buy":
		return domain.SideLong
	case "Sell":
		return domain.SideShort
	}
	return ""
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func optFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func msToTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
