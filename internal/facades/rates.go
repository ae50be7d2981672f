package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sbilibin2017/gw-currency-rates/internal/logger"
	"github.com/sbilibin2017/gw-currency-rates/internal/models"
)

// ErrorKind classifies a failed rates fetch.
type ErrorKind int

const (
	NetworkFailure ErrorKind = iota + 1
	HTTPStatus
	ParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network"
	case HTTPStatus:
		return "http_status"
	case ParseFailure:
		return "parse"
	default:
		return "unknown"
	}
}

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMalformedBody    = errors.New("malformed JSON body")
	ErrRatesNotObject   = errors.New("rates is not an object")
	ErrQuoteNotNumber   = errors.New("quote is not a number")
)

// FetchError describes why GetQuotes failed.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // set for HTTPStatus only
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == HTTPStatus {
		return fmt.Sprintf("fetch rates: %s %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch rates: %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RatesRequest is the fixed shape of the provider request.
type RatesRequest struct {
	BaseURL     string
	AccessToken string
	Source      string
	Targets     []string
}

// BuildRatesURL returns {BaseURL}/{AccessToken}/rates?source=..&target=A,B,C.
// Commas in the target list are kept literal.
func BuildRatesURL(r RatesRequest) (string, error) {
	u, err := url.Parse(strings.TrimRight(r.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("parse base url: %q is not absolute", r.BaseURL)
	}

	if u.Path == "" {
		u.Path = "/"
	}
	u = u.JoinPath(r.AccessToken, "rates")

	q := u.Query()
	q.Set("source", r.Source)
	q.Set("target", strings.Join(r.Targets, ","))
	u.RawQuery = strings.ReplaceAll(q.Encode(), "%2C", ",")

	return u.String(), nil
}

// RatesHTTPFacade reads quotes from the currency-rates provider over HTTP.
type RatesHTTPFacade struct {
	client   *http.Client
	endpoint string
}

// NewRatesHTTPFacade creates a facade issuing requests of shape r through client.
func NewRatesHTTPFacade(client *http.Client, r RatesRequest) (*RatesHTTPFacade, error) {
	endpoint, err := BuildRatesURL(r)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &RatesHTTPFacade{client: client, endpoint: endpoint}, nil
}

// Endpoint returns the full request URL.
func (f *RatesHTTPFacade) Endpoint() string {
	return f.endpoint
}

// GetQuotes issues exactly one GET and decodes the rates mapping in document order.
func (f *RatesHTTPFacade) GetQuotes(ctx context.Context) (*models.Quotes, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, f.fail(&FetchError{Kind: NetworkFailure, Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.fail(&FetchError{Kind: NetworkFailure, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, f.fail(&FetchError{
			Kind:       HTTPStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status),
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, f.fail(&FetchError{Kind: NetworkFailure, Err: err})
	}

	quotes, err := DecodeQuotes(body)
	if err != nil {
		return nil, f.fail(&FetchError{Kind: ParseFailure, Err: err})
	}

	logger.Log.Debugw("rates fetched",
		"endpoint", f.endpoint,
		"present", quotes.Present,
		"count", len(quotes.Entries),
	)

	return quotes, nil
}

func (f *RatesHTTPFacade) fail(err *FetchError) error {
	logger.Log.Errorw("failed to fetch rates",
		"endpoint", f.endpoint,
		"kind", err.Kind.String(),
		"status", err.StatusCode,
		"error", err.Err,
	)
	return err
}

// DecodeQuotes extracts the top-level "rates" object from body, keeping key order.
// A body that is not an object, or whose rates field is missing or falsy
// (null, false, 0, ""), yields Quotes{Present: false}.
func DecodeQuotes(body []byte) (*models.Quotes, error) {
	if !json.Valid(body) {
		return nil, ErrMalformedBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &models.Quotes{}, nil
	}

	var rates json.RawMessage
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		// duplicated keys: the last one wins
		if key, _ := keyTok.(string); key == "rates" {
			rates = raw
		}
	}

	if rates == nil || isFalsy(rates) {
		return &models.Quotes{}, nil
	}

	entries, err := decodeRates(rates)
	if err != nil {
		return nil, err
	}

	return &models.Quotes{Entries: entries, Present: true}, nil
}

func decodeRates(raw json.RawMessage) ([]models.Quote, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrRatesNotObject
	}

	entries := make([]models.Quote, 0)
	index := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		code, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrQuoteNotNumber, code)
		}
		// out-of-range values come back as ±Inf together with ErrRange
		value, err := strconv.ParseFloat(num.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %s: %v", ErrQuoteNotNumber, code, err)
		}

		// a repeated code keeps its first position and takes the last value
		if i, dup := index[code]; dup {
			entries[i].Value = value
			continue
		}
		index[code] = len(entries)
		entries = append(entries, models.Quote{Currency: code, Value: value})
	}

	return entries, nil
}

func isFalsy(raw json.RawMessage) bool {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}
