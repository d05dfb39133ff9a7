package loki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Precondition failures, raised before any network I/O.
var (
	ErrEmptyQuery    = errors.New("query string is required")
	ErrMissingBounds = errors.New("start and end timestamps are required")
	ErrInvertedRange = errors.New("start timestamp cannot be greater than end timestamp")
)

const (
	queryRangePath = "/loki/api/v1/query_range"
	defaultTimeout = 30 * time.Second
	defaultLimit   = 1000
)

// QueryRangeParams is one translated backend query: a LogQL selector plus
// epoch-second bounds and an optional result cap.
type QueryRangeParams struct {
	Query string
	Start int64
	End   int64
	Limit int
}

// Client issues range queries against a Loki instance. It performs no
// retries; retry policy belongs to the transport in front of Loki.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// lokiResponse mirrors the query_range response body: a set of streams, each
// a label set plus ordered (timestamp, message) value pairs.
type lokiResponse struct {
	Status string `json:"status"`
	Data   struct {
		ResultType string       `json:"resultType"`
		Result     []lokiStream `json:"result"`
	} `json:"data"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// QueryRange executes one bounded range query and yields a raw record per
// value pair, stream labels merged in under the tags_ convention. A record
// whose message payload is not a JSON object degrades to opaque text; it
// never fails the batch. Network failures, non-success statuses and shape
// mismatches surface as one wrapped error.
func (c *Client) QueryRange(ctx context.Context, params QueryRangeParams) ([]map[string]any, error) {
	if params.Query == "" {
		return nil, ErrEmptyQuery
	}
	if params.Start == 0 || params.End == 0 {
		return nil, ErrMissingBounds
	}
	if params.Start > params.End {
		return nil, ErrInvertedRange
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	values := url.Values{}
	values.Set("query", params.Query)
	values.Set("start", strconv.FormatInt(params.Start, 10))
	values.Set("end", strconv.FormatInt(params.End, 10))
	values.Set("limit", strconv.Itoa(limit))

	log.Debug().
		Str("query", params.Query).
		Int64("start", params.Start).
		Int64("end", params.End).
		Int("limit", limit).
		Msg("querying loki")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+queryRangePath+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("query loki: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query loki: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query loki: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("query loki: read response: %w", err)
	}

	var parsed lokiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("query loki: decode response: %w", err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("query loki: response status %q", parsed.Status)
	}

	records := make([]map[string]any, 0, limit)
	for _, stream := range parsed.Data.Result {
		for _, pair := range stream.Values {
			records = append(records, streamRecord(stream.Stream, pair[0], pair[1]))
		}
	}
	return records, nil
}

// streamRecord builds one raw record from a value pair, merging stream-level
// labels with the parsed message payload. Loki value timestamps are epoch
// seconds, matching the request bounds.
func streamRecord(labels map[string]string, timestamp, message string) map[string]any {
	record := make(map[string]any, len(labels)+4)

	if ts, err := strconv.ParseInt(timestamp, 10, 64); err == nil {
		record["timestamp"] = ts
	}
	for label, value := range labels {
		record[tagPrefix+label] = value
	}
	if level := labels["level"]; level != "" {
		record["level"] = level
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(message), &payload); err != nil {
		record["message"] = message
		return record
	}

	if msg, ok := payload["message"].(string); ok && msg != "" {
		record["message"] = msg
	} else {
		record["message"] = message
	}
	if level, ok := payload["level"].(string); ok && level != "" {
		record["level"] = level
	}
	if id, ok := payload["eventRecordID"]; ok {
		record["fields_EventRecordID"] = id
	}
	if fields, ok := payload["fields"].(map[string]any); ok {
		for key, value := range fields {
			record["fields_"+key] = value
		}
	}
	return record
}
