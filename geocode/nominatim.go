package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Nominatim defaults
const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "CivicTrack/1.0 (https://github.com/civictrack)"
)

var countrySuffix = regexp.MustCompile(`(?i),\s*india$`)

// Nominatim geocodes against an OpenStreetMap Nominatim search endpoint.
// It must only be called through a Sequencer: the public service allows at
// most one request per second.
type Nominatim struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewNominatim creates a geocoder for baseURL (DefaultBaseURL when empty)
func NewNominatim(baseURL string, httpClient *http.Client) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  DefaultUserAgent,
	}
}

// SearchQuery returns the query sent for location: trimmed, with ", India"
// appended unless it already ends that way.
func SearchQuery(location string) string {
	q := strings.TrimSpace(location)
	if q == "" || countrySuffix.MatchString(q) {
		return q
	}
	return q + ", India"
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode looks up the first search result for location
func (n *Nominatim) Geocode(ctx context.Context, location string) (Coords, bool, error) {
	q := SearchQuery(location)
	if q == "" {
		return Coords{}, false, nil
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Coords{}, false, err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Coords{}, false, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Coords{}, false, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&results); err != nil {
		return Coords{}, false, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return Coords{}, false, nil
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coords{}, false, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coords{}, false, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}
	return Coords{Lat: lat, Lng: lng}, true, nil
}
