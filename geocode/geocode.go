package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Outcome is the result class of a reverse lookup
type Outcome int

// Lookup outcomes. Unavailable means the service could not answer; NotFound
// means it answered without a usable district.
const (
	NotFound Outcome = iota
	Found
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Unavailable:
		return "unavailable"
	}
	return "not_found"
}

// Result is what a reverse lookup produced
type Result struct {
	Outcome  Outcome
	District string
	Err      error
}

// districtKeys are tried in order against the normalized address keys
var districtKeys = []string{"state_district", "county", "district"}

// Client reverse geocodes points against a Nominatim compatible endpoint
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewClient creates a reverse geocoding client. Every lookup is bounded by timeout.
func NewClient(baseURL, userAgent string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.S()
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// District looks up the district or county containing the point. It never
// fails; transport and decoding problems come back as Unavailable.
func (c *Client) District(ctx context.Context, longitude, latitude float64) Result {
	addresses, err := c.reverse(ctx, longitude, latitude)
	if err != nil {
		c.log.Warnw("reverse geocoding unavailable", "lng", longitude, "lat", latitude, "error", err)
		return Result{Outcome: Unavailable, Err: err}
	}
	if len(addresses) == 0 {
		return Result{Outcome: NotFound}
	}
	if district := pickDistrict(addresses[0]); district != "" {
		return Result{Outcome: Found, District: district}
	}
	return Result{Outcome: NotFound}
}

type place struct {
	Address map[string]interface{} `json:"address"`
}

func (c *Client) reverse(ctx context.Context, longitude, latitude float64) ([]map[string]interface{}, error) {
	params := url.Values{}
	params.Add("format", "jsonv2")
	params.Add("lat", fmt.Sprintf("%.6f", latitude))
	params.Add("lon", fmt.Sprintf("%.6f", longitude))
	params.Add("zoom", "10")
	params.Add("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reverse geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call reverse geocoder: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read reverse geocoder response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocoder error (status %d): %s", resp.StatusCode, string(body))
	}

	return decodeAddresses(body)
}

// decodeAddresses accepts both a single place object and an array of places
func decodeAddresses(body []byte) ([]map[string]interface{}, error) {
	trimmed := strings.TrimSpace(string(body))
	var places []place
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(body, &places); err != nil {
			return nil, fmt.Errorf("failed to parse reverse geocoder response: %w", err)
		}
	} else {
		var p place
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("failed to parse reverse geocoder response: %w", err)
		}
		if p.Address != nil {
			places = append(places, p)
		}
	}

	addresses := make([]map[string]interface{}, 0, len(places))
	for _, p := range places {
		if p.Address != nil {
			addresses = append(addresses, p.Address)
		}
	}
	return addresses, nil
}

func pickDistrict(address map[string]interface{}) string {
	normalized := make(map[string]string, len(address))
	for k, v := range address {
		s, ok := v.(string)
		if !ok {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), " ", "_")
		normalized[key] = strings.TrimSpace(s)
	}
	for _, key := range districtKeys {
		if v := normalized[key]; v != "" {
			return v
		}
	}
	return ""
}
