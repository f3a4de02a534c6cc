// Copyright 2026 SGNL.ai, Inc.

// Package pagination implements the policy-driven page-at-a-time iteration
// of spec.md §4.5: offset, page, cursor, and link-header strategies sharing
// one termination-rule shape. Grounded on the teacher's per-datasource
// cursor handling (pkg/pagination's CompositeCursor / GetNextCursorFromLinkHeader
// and each datasource's own "fetch, check has-more, advance offset" loop in
// pkg/okta, pkg/crowdstrike, pkg/pagerduty): this package generalizes that
// repeated shape into one reusable engine instead of one copy per adapter.
package pagination

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// Strategy names one of the four termination-rule shapes of spec.md §4.5.
type Strategy string

const (
	StrategyOffset Strategy = "offset"
	StrategyPage   Strategy = "page"
	StrategyCursor Strategy = "cursor"
	StrategyLink   Strategy = "link"
)

// Config carries every knob a strategy needs; only the fields relevant to
// the chosen Strategy are consulted, mirroring the single PaginationConfig
// shared across strategies in spec.md §4.5.
type Config struct {
	Strategy Strategy

	OffsetParam string
	LimitParam  string

	PageParam     string
	PageSizeParam string

	CursorParam   string
	NextCursorKey string
	HasMoreKey    string

	PageSize int
	DataKey  string
	MaxPages int
	Params   map[string]string
}

// Requester is the subset of the Client's HTTP-family surface a paginator
// needs: one GET per page advance. pkg/dcapix.Client satisfies this.
type Requester interface {
	Get(ctx context.Context, endpoint string, params map[string]string) (dcapi.ApiResponse, error)
}

// Decoder converts one raw page item into T, per spec.md §4.5's "Converts
// each item through model_class if provided" rule. A nil Decoder means
// items are yielded as their raw decoded JSON shape (typically
// map[string]any).
type Decoder[T any] func(raw any) (T, error)

// Paginator is a stateful iterator: Next returns the next item and true, or
// the zero value and false at end-of-stream. Err reports the failure, if
// any, that caused Next to return false early — distinguishing a clean
// end-of-stream from an aborted one, per spec.md §9's "lazy iterators with
// internal state" rearchitecture note.
type Paginator[T any] interface {
	Next(ctx context.Context) (T, bool)
	Err() error
}

// New constructs the Paginator for cfg.Strategy.
func New[T any](req Requester, endpoint string, cfg Config, decode Decoder[T]) (Paginator[T], error) {
	switch cfg.Strategy {
	case StrategyOffset:
		return &offsetPaginator[T]{req: req, endpoint: endpoint, cfg: cfg, decode: decode}, nil
	case StrategyPage:
		return &pagePaginator[T]{req: req, endpoint: endpoint, cfg: cfg, decode: decode, page: 1}, nil
	case StrategyCursor:
		return &cursorPaginator[T]{req: req, endpoint: endpoint, cfg: cfg, decode: decode}, nil
	case StrategyLink:
		return &linkPaginator[T]{req: req, endpoint: endpoint, cfg: cfg, decode: decode}, nil
	default:
		return nil, fmt.Errorf("pagination: unknown strategy %q", cfg.Strategy)
	}
}

// GetPaginator is the named-strategy factory of spec.md §4.5
// ("get_paginator(strategy) returns the corresponding paginator").
func GetPaginator[T any](strategy string, req Requester, endpoint string, cfg Config, decode Decoder[T]) (Paginator[T], error) {
	cfg.Strategy = Strategy(strategy)

	return New(req, endpoint, cfg, decode)
}

// Paginate is the convenience function of spec.md §4.5: it instantiates the
// named strategy and drains it fully into a slice. Callers that want
// streaming behavior should use New/GetPaginator directly instead.
func Paginate[T any](ctx context.Context, strategy string, req Requester, endpoint string, cfg Config, decode Decoder[T]) ([]T, error) {
	p, err := GetPaginator(strategy, req, endpoint, cfg, decode)
	if err != nil {
		return nil, err
	}

	var out []T

	for {
		item, ok := p.Next(ctx)
		if !ok {
			break
		}

		out = append(out, item)
	}

	return out, p.Err()
}

// extractData implements spec.md §4.5's _extract_data: if cfg.DataKey is
// set, read resp.Data[data_key] and fail if missing or not a list; else
// resp.Data itself must be a list (or nil, read as an empty page).
func extractData(resp dcapi.ApiResponse, dataKey string) ([]any, error) {
	raw := resp.Data

	if dataKey != "" {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pagination: response body is not an object, cannot read data_key %q", dataKey)
		}

		v, ok := m[dataKey]
		if !ok {
			return nil, fmt.Errorf("pagination: data_key %q missing from response body", dataKey)
		}

		raw = v
	}

	switch v := raw.(type) {
	case []any:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("pagination: expected a list of items, got %T", raw)
	}
}

func decodeItems[T any](items []any, decode Decoder[T]) []T {
	out := make([]T, 0, len(items))

	for _, raw := range items {
		if decode == nil {
			if t, ok := any(raw).(T); ok {
				out = append(out, t)
			}

			continue
		}

		t, err := decode(raw)
		if err != nil {
			// A conversion failure is not fatal to the page: the raw item
			// is yielded in its place when it is itself a T, and dropped
			// otherwise. Nothing is logged.
			if t, ok := any(raw).(T); ok {
				out = append(out, t)
			}

			continue
		}

		out = append(out, t)
	}

	return out
}

func requireSuccess(resp dcapi.ApiResponse, operation string) error {
	if resp.Success {
		return nil
	}

	detail := "unknown error"
	if resp.Error != nil {
		detail = resp.Error.Detail
	}

	return dcerrors.NewApiError(operation, detail)
}

// linkHeaderRe extracts <URL>; rel="name" segments from a Link header,
// tolerant of surrounding whitespace, per spec.md §4.5.
var linkHeaderRe = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="?([^",;]+)"?`)

func parseLinkHeader(header string) map[string]string {
	out := make(map[string]string)

	for _, segment := range strings.Split(header, ",") {
		m := linkHeaderRe.FindStringSubmatch(strings.TrimSpace(segment))
		if len(m) == 3 {
			out[m[2]] = m[1]
		}
	}

	return out
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

// offsetPaginator implements the Offset strategy of spec.md §4.5.
type offsetPaginator[T any] struct {
	req      Requester
	endpoint string
	cfg      Config
	decode   Decoder[T]

	buf    []T
	bufIdx int
	offset int
	page   int
	done   bool
	err    error
}

func (p *offsetPaginator[T]) Next(ctx context.Context) (T, bool) {
	var zero T

	for {
		if p.bufIdx < len(p.buf) {
			item := p.buf[p.bufIdx]
			p.bufIdx++

			return item, true
		}

		if p.done {
			return zero, false
		}

		if p.cfg.MaxPages > 0 && p.page >= p.cfg.MaxPages {
			p.done = true

			return zero, false
		}

		params := mergeParams(p.cfg.Params, map[string]string{
			p.cfg.OffsetParam: formatInt(p.offset),
			p.cfg.LimitParam:  formatInt(p.cfg.PageSize),
		})

		resp, err := p.req.Get(ctx, p.endpoint, params)
		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		if err := requireSuccess(resp, "paginate (offset)"); err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		raw, err := extractData(resp, p.cfg.DataKey)
		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		p.page++
		p.offset += len(raw)
		p.buf = decodeItems(raw, p.decode)
		p.bufIdx = 0

		if len(p.buf) == 0 {
			return zero, false
		}

		// A short page (fewer items than requested) is still yielded in
		// full; `done` only stops the *next* fetch, per spec.md §4.5.
		if len(raw) < p.cfg.PageSize {
			p.done = true
		}
	}
}

func (p *offsetPaginator[T]) Err() error { return p.err }

// pagePaginator implements the Page strategy of spec.md §4.5. It shares the
// Offset strategy's stop conditions but advances a page counter instead of
// a running offset.
type pagePaginator[T any] struct {
	req      Requester
	endpoint string
	cfg      Config
	decode   Decoder[T]

	buf    []T
	bufIdx int
	page   int
	reqN   int
	done   bool
	err    error
}

func (p *pagePaginator[T]) Next(ctx context.Context) (T, bool) {
	var zero T

	for {
		if p.bufIdx < len(p.buf) {
			item := p.buf[p.bufIdx]
			p.bufIdx++

			return item, true
		}

		if p.done {
			return zero, false
		}

		if p.cfg.MaxPages > 0 && p.reqN >= p.cfg.MaxPages {
			p.done = true

			return zero, false
		}

		params := mergeParams(p.cfg.Params, map[string]string{
			p.cfg.PageParam:     formatInt(p.page),
			p.cfg.PageSizeParam: formatInt(p.cfg.PageSize),
		})

		resp, err := p.req.Get(ctx, p.endpoint, params)
		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		if err := requireSuccess(resp, "paginate (page)"); err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		raw, err := extractData(resp, p.cfg.DataKey)
		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		p.reqN++
		p.page++
		p.buf = decodeItems(raw, p.decode)
		p.bufIdx = 0

		if len(p.buf) == 0 {
			return zero, false
		}

		if len(raw) < p.cfg.PageSize {
			p.done = true
		}
	}
}

func (p *pagePaginator[T]) Err() error { return p.err }

// cursorPaginator implements the Cursor strategy of spec.md §4.5.
type cursorPaginator[T any] struct {
	req      Requester
	endpoint string
	cfg      Config
	decode   Decoder[T]

	buf      []T
	bufIdx   int
	cursor   string
	gotFirst bool
	reqN     int
	done     bool
	err      error
}

func (p *cursorPaginator[T]) Next(ctx context.Context) (T, bool) {
	var zero T

	for {
		if p.bufIdx < len(p.buf) {
			item := p.buf[p.bufIdx]
			p.bufIdx++

			return item, true
		}

		if p.done {
			return zero, false
		}

		if p.cfg.MaxPages > 0 && p.reqN >= p.cfg.MaxPages {
			p.done = true

			return zero, false
		}

		params := map[string]string{}
		for k, v := range p.cfg.Params {
			params[k] = v
		}

		if p.gotFirst {
			params[p.cfg.CursorParam] = p.cursor
		}

		resp, err := p.req.Get(ctx, p.endpoint, params)
		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		if err := requireSuccess(resp, "paginate (cursor)"); err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		p.gotFirst = true
		p.reqN++

		raw, err := extractData(resp, p.cfg.DataKey)
		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		p.buf = decodeItems(raw, p.decode)
		p.bufIdx = 0

		if len(p.buf) == 0 {
			p.done = true

			return zero, false
		}

		body, _ := resp.Data.(map[string]any)

		hasMore, _ := body[p.cfg.HasMoreKey].(bool)
		next, hasNext := body[p.cfg.NextCursorKey].(string)

		if !hasMore || !hasNext || next == "" {
			p.done = true

			continue
		}

		p.cursor = next
	}
}

func (p *cursorPaginator[T]) Err() error { return p.err }

// linkPaginator implements the Link-header strategy of spec.md §4.5: the
// first request carries page_size_param; every subsequent request reuses
// the URL from the prior response's Link header rel="next" entry, verbatim
// and without any merged params.
type linkPaginator[T any] struct {
	req      Requester
	endpoint string
	cfg      Config
	decode   Decoder[T]

	buf      []T
	bufIdx   int
	nextURL  string
	gotFirst bool
	reqN     int
	done     bool
	err      error
}

func (p *linkPaginator[T]) Next(ctx context.Context) (T, bool) {
	var zero T

	for {
		if p.bufIdx < len(p.buf) {
			item := p.buf[p.bufIdx]
			p.bufIdx++

			return item, true
		}

		if p.done {
			return zero, false
		}

		if p.cfg.MaxPages > 0 && p.reqN >= p.cfg.MaxPages {
			p.done = true

			return zero, false
		}

		var (
			resp dcapi.ApiResponse
			err  error
		)

		switch {
		case !p.gotFirst:
			params := mergeParams(p.cfg.Params, map[string]string{
				p.cfg.PageSizeParam: formatInt(p.cfg.PageSize),
			})
			resp, err = p.req.Get(ctx, p.endpoint, params)
		default:
			resp, err = p.req.Get(ctx, p.nextURL, nil)
		}

		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		if err := requireSuccess(resp, "paginate (link)"); err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		p.gotFirst = true
		p.reqN++

		raw, err := extractData(resp, p.cfg.DataKey)
		if err != nil {
			p.err = err
			p.done = true

			return zero, false
		}

		p.buf = decodeItems(raw, p.decode)
		p.bufIdx = 0

		if len(p.buf) == 0 {
			p.done = true

			return zero, false
		}

		links := parseLinkHeader(resp.Headers["Link"])

		next, ok := links["next"]
		if !ok || next == "" {
			p.done = true

			continue
		}

		p.nextURL = next
	}
}

func (p *linkPaginator[T]) Err() error { return p.err }

func mergeParams(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))

	for k, v := range base {
		out[k] = v
	}

	for k, v := range extra {
		out[k] = v
	}

	return out
}
