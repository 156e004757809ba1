package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimClient queries an OpenStreetMap Nominatim server.
//
// Requests are throttled by a shared limiter (the public server allows one
// request per second) and are safe for concurrent use.
type NominatimClient struct {
	session     *http.Client
	baseURL     string
	userAgent   string
	language    string
	limiter     *rate.Limiter
	maxAttempts int
	backoff     time.Duration
}

type NominatimOption func(*NominatimClient)

// WithHTTPClient replaces the default client, which times out after 10s.
func WithHTTPClient(c *http.Client) NominatimOption {
	return func(n *NominatimClient) {
		if c != nil {
			n.session = c
		}
	}
}

// WithRetry sets the attempt count and the initial backoff.
func WithRetry(attempts int, backoff time.Duration) NominatimOption {
	return func(n *NominatimClient) {
		n.maxAttempts = attempts
		n.backoff = backoff
	}
}

// WithLanguage sets the Accept-Language sent with every request ("fr" by default).
func WithLanguage(lang string) NominatimOption {
	return func(n *NominatimClient) {
		if lang = strings.TrimSpace(lang); lang != "" {
			n.language = lang
		}
	}
}

func NewNominatimClient(baseURL, userAgent string, rps float64, opts ...NominatimOption) (*NominatimClient, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim client: user agent is empty")
	}
	if rps <= 0 {
		return nil, fmt.Errorf("nominatim client: rate must be positive, got %v", rps)
	}
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}

	n := &NominatimClient{
		session:     &http.Client{Timeout: 10 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		language:    "fr",
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.maxAttempts < 1 {
		n.maxAttempts = 1
	}

	return n, nil
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Search returns the coordinates of the best match for query.
// It returns an error wrapping ErrPlaceNotFound when the server has no match.
func (n *NominatimClient) Search(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Search")(&err)

	params := map[string]string{"q": query, "limit": "1"}
	resp, err := n.doWithRetry(ctx, func() (*http.Request, error) {
		return n.newRequest(ctx, "/search", params)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: decode response: %w", query, err)
	}
	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: %w", query, ErrPlaceNotFound)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: parse lat: %w", query, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: parse lon: %w", query, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

// Reverse returns the display name of the place at c.
func (n *NominatimClient) Reverse(ctx context.Context, c domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "nominatim.Reverse")(&err)

	params := map[string]string{
		"lat": strconv.FormatFloat(c.Lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(c.Lon, 'f', -1, 64),
	}
	resp, err := n.doWithRetry(ctx, func() (*http.Request, error) {
		return n.newRequest(ctx, "/reverse", params)
	})
	if err != nil {
		return "", fmt.Errorf("nominatim reverse (%v, %v): %w", c.Lat, c.Lon, err)
	}
	defer resp.Body.Close()

	var decoded reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("nominatim reverse: decode response: %w", err)
	}
	if decoded.Error != "" || decoded.DisplayName == "" {
		return "", fmt.Errorf("nominatim reverse (%v, %v): %w", c.Lat, c.Lon, ErrPlaceNotFound)
	}

	return decoded.DisplayName, nil
}
