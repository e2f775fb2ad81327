package elastic

import (
	"context"
	"fmt"
	"time"

	xhttp "github.com/MarkCoder7/pktvisor/pkg/http"
	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

// Client issues one-shot aggregation queries against an Elasticsearch index.
// It has no coupling to dashboard state; it exists to enumerate the
// categorical values present in the index at startup.
type Client struct {
	baseURL string
	client  *xhttp.Client
	l       *applogger.Logger
}

// New creates a client for the given Elasticsearch base URL.
func New(baseURL string, timeout time.Duration, l *applogger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		l:       l,
	}
}

type termsAgg struct {
	Terms struct {
		Field string `json:"field"`
		Size  int    `json:"size"`
	} `json:"terms"`
}

type searchRequest struct {
	Size int                 `json:"size"`
	Aggs map[string]termsAgg `json:"aggs"`
}

type bucket struct {
	Key      interface{} `json:"key"`
	DocCount int64       `json:"doc_count"`
}

type searchResponse struct {
	Aggregations map[string]struct {
		Buckets []bucket `json:"buckets"`
	} `json:"aggregations"`
}

// categories queried at startup: pop/network/host keyword fields.
var categories = map[string]string{
	"pop_list":     "pop.raw",
	"network_list": "network.raw",
	"host_list":    "host.raw",
}

// LogVariables runs the three term aggregations and logs up to 100 distinct
// values per category. Failures are logged and returned, never fatal to the
// caller.
func (c *Client) LogVariables(ctx context.Context) error {
	req := searchRequest{Size: 0, Aggs: make(map[string]termsAgg, len(categories))}
	for name, field := range categories {
		var a termsAgg
		a.Terms.Field = field
		a.Terms.Size = 100
		req.Aggs[name] = a
	}

	var resp searchResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.baseURL + "/_search",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    req,
	}, &resp)
	if err != nil {
		c.l.Warn("elastic variables query failed", applogger.Error(err))
		return fmt.Errorf("elastic variables: %w", err)
	}

	for name, agg := range resp.Aggregations {
		label := name
		if f, ok := categories[name]; ok {
			label = f
		}
		for _, b := range agg.Buckets {
			c.l.Info("elastic variable",
				applogger.String("category", label),
				applogger.Any("value", b.Key),
				applogger.Int64("docs", b.DocCount),
			)
		}
	}
	return nil
}
