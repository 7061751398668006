package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"BullScout/internal/model"
)

// YahooProvider implements Provider using the Yahoo Finance chart API.
type YahooProvider struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooProvider) Name() string { return "yahoo" }

func (f *YahooProvider) yahooSymbol(ticker string, kind Kind) string {
	if mapped, ok := f.SymbolMap[ticker]; ok {
		return mapped
	}
	// Yahoo quotes crypto pairs with a dash: BTCUSD -> BTC-USD.
	if kind == KindCrypto && strings.HasSuffix(ticker, "USD") && !strings.Contains(ticker, "-") {
		return ticker[:len(ticker)-3] + "-USD"
	}
	return ticker
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchSeries fetches lookback bars of the given interval for one ticker.
func (f *YahooProvider) FetchSeries(ticker string, kind Kind, interval Interval, lookback int) (model.Series, error) {
	yInterval, rng := yahooWindow(interval, lookback)
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(f.yahooSymbol(ticker, kind)), yInterval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", ticker)
	}
	quote := result.Indicators.Quote[0]
	bars := make(model.Series, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (halts, holidays)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > lookback {
		bars = bars[len(bars)-lookback:]
	}
	return bars, nil
}

// yahooWindow maps an interval and bar count to Yahoo's interval and range
// parameters. Ranges are rounded up; the result is trimmed to lookback.
func yahooWindow(interval Interval, lookback int) (string, string) {
	switch interval {
	case Interval1m:
		if lookback <= 390 {
			return "1m", "1d"
		}
		return "1m", "5d"
	case Interval5m:
		if lookback <= 390 {
			return "5m", "5d"
		}
		return "5m", "1mo"
	case Interval1h:
		if lookback <= 160 {
			return "60m", "1mo"
		}
		return "60m", "3mo"
	default:
		switch {
		case lookback <= 22:
			return "1d", "1mo"
		case lookback <= 66:
			return "1d", "3mo"
		case lookback <= 130:
			return "1d", "6mo"
		case lookback <= 260:
			return "1d", "1y"
		default:
			return "1d", "2y"
		}
	}
}
