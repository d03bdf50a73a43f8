package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"rpi_trader/internal/models"
	"rpi_trader/internal/modules/config"
)

// Client: REST-клиент TwelveData /time_series.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger

	baseURL string
	apiKey  string
	symbol  string
	size    int
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	td := cfg.TwelveData

	perMin := td.RatePerMin
	if perMin <= 0 {
		perMin = 8
	}
	timeout := td.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), len(models.Timeframes)),
		log:     log.Named("twelvedata"),
		baseURL: td.BaseURL,
		apiKey:  td.APIKey,
		symbol:  td.Symbol,
		size:    td.HistorySize,
	}
}

func (c *Client) Symbol() string { return c.symbol }

// timeSeriesResponse: values приходят строками, newest-first.
type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
	} `json:"values"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetCandles отдаёт серию от старой свечи к новой.
func (c *Client) GetCandles(ctx context.Context, tf models.Timeframe, limit int) (models.Series, error) {
	if limit <= 0 {
		limit = c.size
	}
	norm, ok := NormTF(string(tf))
	if !ok {
		return nil, fmt.Errorf("%w: unsupported timeframe %q", models.ErrFetchFailure, tf)
	}
	tf = norm
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s rate limit: %v", models.ErrFetchFailure, tf, err)
	}

	q := url.Values{}
	q.Set("symbol", c.symbol)
	q.Set("interval", string(tf))
	q.Set("outputsize", strconv.Itoa(limit))
	q.Set("apikey", c.apiKey)
	q.Set("format", "JSON")
	u := c.baseURL + "/time_series?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s new request: %v", models.ErrFetchFailure, tf, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s do: %v", models.ErrFetchFailure, tf, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s read body: %v", models.ErrFetchFailure, tf, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: %s http %d: %s", models.ErrFetchFailure, tf, resp.StatusCode, string(b))
	}

	var r timeSeriesResponse
	if err := sonic.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("%w: %s decode: %v", models.ErrFetchFailure, tf, err)
	}
	if r.Status == "error" || len(r.Values) == 0 {
		return nil, fmt.Errorf("%w: %s api error: code=%d msg=%s", models.ErrFetchFailure, tf, r.Code, r.Message)
	}

	// разворачиваем: индикаторы считаются от старой свечи к новой
	out := make(models.Series, 0, len(r.Values))
	for i := len(r.Values) - 1; i >= 0; i-- {
		v := r.Values[i]
		candle, err := parseCandle(v.Datetime, v.Open, v.High, v.Low, v.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %q: %v", models.ErrFetchFailure, tf, v.Datetime, err)
		}
		out = append(out, candle)
	}

	c.log.Debug("candles fetched",
		zap.String("interval", string(tf)),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func parseCandle(ts, o, h, l, cl string) (models.Candle, error) {
	var (
		c   models.Candle
		err error
	)
	if c.Open, err = strconv.ParseFloat(o, 64); err != nil {
		return c, err
	}
	if c.High, err = strconv.ParseFloat(h, 64); err != nil {
		return c, err
	}
	if c.Low, err = strconv.ParseFloat(l, 64); err != nil {
		return c, err
	}
	if c.Close, err = strconv.ParseFloat(cl, 64); err != nil {
		return c, err
	}
	c.Time = parseDatetime(ts)
	return c, nil
}
