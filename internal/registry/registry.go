// Package registry looks up companies in ARES, the Czech business registry,
// to pre-fill customer forms.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the public ARES REST endpoint.
const DefaultBaseURL = "https://ares.gov.cz/ekonomicke-subjekty-v-be/rest"

// maxBody caps how much of a registry response is read.
const maxBody = 1 << 20

var (
	// ErrNotFound means the registry does not know the identifier.
	ErrNotFound = errors.New("registry: subject not found")
	// ErrLookupFailed matches every LookupError.
	ErrLookupFailed = errors.New("registry: lookup failed")
)

// LookupError describes a failed registry call: transport error,
// unexpected status or an unusable body.
type LookupError struct {
	ICO    string
	Status int // 0 when no response was received
	Err    error
}

func (e *LookupError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("registry lookup %s: status %d: %v", e.ICO, e.Status, e.Err)
	}
	return fmt.Sprintf("registry lookup %s: %v", e.ICO, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrLookupFailed }

// Record is the subset of a registry entry used to pre-fill a customer.
type Record struct {
	Name    string
	Address string
	ICO     string
}

// Client queries the registry over HTTP. It performs a single attempt per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL (DefaultBaseURL when empty).
// A zero timeout leaves the request bounded only by its context.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the economic subject identified by ico.
// It returns ErrNotFound when the registry answers 404 and a *LookupError otherwise.
func (c *Client) Lookup(ctx context.Context, ico string) (*Record, error) {
	ico = strings.TrimSpace(ico)
	endpoint := c.baseURL + "/ekonomicke-subjekty/" + url.PathEscape(ico)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupError{ICO: ico, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LookupError{ICO: ico, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ico)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &LookupError{ICO: ico, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LookupError{ICO: ico, Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	rec, err := parseSubject(body)
	if err != nil {
		return nil, &LookupError{ICO: ico, Status: resp.StatusCode, Err: err}
	}
	return rec, nil
}

func parseSubject(body []byte) (*Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed JSON body")
	}
	doc := gjson.ParseBytes(body)
	ico := doc.Get("ico")
	if !ico.Exists() || ico.String() == "" {
		return nil, errors.New("response has no ico")
	}
	addr := doc.Get("adresaDorucovaci")
	return &Record{
		Name: doc.Get("obchodniJmeno").String(),
		Address: JoinAddressLines(
			addr.Get("radekAdresy1").String(),
			addr.Get("radekAdresy2").String(),
			addr.Get("radekAdresy3").String(),
		),
		ICO: ico.String(),
	}, nil
}

// JoinAddressLines joins the delivery address lines with ", ".
// Empty lines are kept as empty segments so the position of each line stays visible.
func JoinAddressLines(line1, line2, line3 string) string {
	return strings.Join([]string{line1, line2, line3}, ", ")
}
