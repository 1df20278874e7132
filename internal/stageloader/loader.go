// Package stageloader fills the stage dropdown of the digital-lab transfer
// form from the stages endpoint whenever an order is picked. It is the client
// side of that form; the server answers from handlers.StageLabels.
package stageloader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StagesPath is the admin endpoint listing the stage labels of an order.
const StagesPath = "/admin/core/digitallabtransfer/stages/"

// maxBodySize caps how much of a stages reply is read.
const maxBodySize = 1 << 20

// Placeholder texts shown as the dropdown's only option.
const (
	LoadingText  = "در حال بارگذاری مراحل..."
	NoStagesText = "— مرحله‌ای یافت نشد —"
	ErrorText    = "— خطا در دریافت مرحله‌ها —"
)

// Option is one entry of the stage select.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

func placeholder(text string) []Option {
	return []Option{{Value: "", Text: text}}
}

// Loading is what the dropdown shows while a request is in flight.
func Loading() []Option { return placeholder(LoadingText) }

type Loader struct {
	BaseURL string
	Client  *http.Client
	// Header, when set, is added to every request (session cookie or bearer token).
	Header http.Header
}

func New(baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Loader{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

// Load fetches the stages of orderID and returns the options to display.
// An empty orderID returns nil: the dropdown is left as it is. Failures
// never surface as errors; they become a single placeholder option.
func (l *Loader) Load(ctx context.Context, orderID string) []Option {
	if orderID == "" {
		return nil
	}
	labels, err := l.fetch(ctx, orderID)
	if err != nil {
		log.Printf("stageloader: order %s: %v", orderID, err)
		return placeholder(ErrorText)
	}
	if len(labels) == 0 {
		return placeholder(NoStagesText)
	}
	opts := make([]Option, len(labels))
	for i, label := range labels {
		opts[i] = Option{Value: label, Text: label}
	}
	return opts
}

func (l *Loader) fetch(ctx context.Context, orderID string) ([]string, error) {
	u := l.BaseURL + StagesPath + "?order_id=" + url.QueryEscape(orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range l.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request stages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("stages reply larger than %d bytes", maxBodySize)
	}
	return decodeLabels(body)
}

// decodeLabels accepts any JSON value. Only an array yields labels; null,
// objects and scalars mean "no stages". Non-string array items are rendered
// with their JSON text.
func decodeLabels(body []byte) ([]string, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decode stages: %w", err)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, nil
	}
	labels := make([]string, 0, len(items))
	for _, item := range items {
		switch x := item.(type) {
		case string:
			labels = append(labels, x)
		default:
			raw, _ := json.Marshal(x)
			labels = append(labels, string(raw))
		}
	}
	return labels, nil
}
