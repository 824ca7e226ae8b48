package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
	"github.com/wanderlens/backend/internal/infrastructure/config"
)

const (
	defaultGeocodeEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultPincodeEndpoint = "https://api.postalpincode.in/pincode"
	defaultRequestTimeout  = 10 * time.Second
)

// ErrNoResults indicates the provider returned no usable address for the query
var ErrNoResults = errors.New("geocode: no results for query")

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// placeNamePreference orders address component types from most to least
// specific. The first matching component names the place.
var placeNamePreference = []string{
	"neighborhood",
	"sublocality_level_1",
	"sublocality",
	"locality",
	"administrative_area_level_2",
	"administrative_area_level_1",
}

// Ensure GoogleGeocoder implements the ingestion port
var _ ingestion.GeoResolver = (*GoogleGeocoder)(nil)

// GoogleGeocoder resolves coordinates through the Google Geocoding API and
// postal codes through the public pincode lookup service.
type GoogleGeocoder struct {
	apiKey          string
	endpoint        string
	pincodeEndpoint string
	httpClient      *http.Client
	logger          *zap.Logger
}

// GoogleGeocoderOption is a functional option for configuring the geocoder
type GoogleGeocoderOption func(*GoogleGeocoder)

// WithLogger sets the logger for the geocoder
func WithLogger(logger *zap.Logger) GoogleGeocoderOption {
	return func(g *GoogleGeocoder) {
		g.logger = logger
	}
}

// WithHTTPClient overrides the HTTP client, useful for tests
func WithHTTPClient(client *http.Client) GoogleGeocoderOption {
	return func(g *GoogleGeocoder) {
		g.httpClient = client
	}
}

// NewGoogleGeocoder creates a geocoder from configuration
func NewGoogleGeocoder(cfg *config.GeocodingConfig, opts ...GoogleGeocoderOption) (*GoogleGeocoder, error) {
	if cfg == nil {
		return nil, errors.New("geocoding config is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("geocoding API key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultGeocodeEndpoint
	}
	pincodeEndpoint := cfg.PostalCodeAPI
	if pincodeEndpoint == "" {
		pincodeEndpoint = defaultPincodeEndpoint
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	g := &GoogleGeocoder{
		apiKey:          cfg.APIKey,
		endpoint:        endpoint,
		pincodeEndpoint: strings.TrimSuffix(pincodeEndpoint, "/"),
		httpClient:      &http.Client{Timeout: timeout},
		logger:          zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// ReverseGeocode resolves a coordinate pair to address information.
// Returns ErrNoResults when the provider knows nothing about the location.
func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, point valueobject.GeoPoint) (places.ResolvedLocation, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", point.Latitude(), point.Longitude()))
	params.Set("key", g.apiKey)

	var resp googleGeocodeResponse
	if err := g.getJSON(ctx, g.endpoint+"?"+params.Encode(), &resp); err != nil {
		return places.ResolvedLocation{}, err
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return places.ResolvedLocation{}, ErrNoResults
	default:
		return places.ResolvedLocation{}, fmt.Errorf("geocode: provider status %s: %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Results) == 0 {
		return places.ResolvedLocation{}, ErrNoResults
	}

	resolved := resolveFromComponents(resp.Results[0].AddressComponents)
	g.logger.Debug("reverse geocoded location",
		zap.String("coordinates", point.String()),
		zap.String("place_name", resolved.PlaceName),
		zap.String("city", resolved.City))

	return resolved, nil
}

// ForwardGeocode resolves a 6-digit postal code to district-level address
// information via the pincode lookup service.
func (g *GoogleGeocoder) ForwardGeocode(ctx context.Context, postalCode string) (places.ResolvedLocation, error) {
	postalCode = strings.TrimSpace(postalCode)
	if !pincodePattern.MatchString(postalCode) {
		return places.ResolvedLocation{}, fmt.Errorf("geocode: invalid postal code %q", postalCode)
	}

	var payload []pincodeResponse
	if err := g.getJSON(ctx, g.pincodeEndpoint+"/"+postalCode, &payload); err != nil {
		return places.ResolvedLocation{}, err
	}

	if len(payload) == 0 || payload[0].Status != "Success" || len(payload[0].PostOffice) == 0 {
		return places.ResolvedLocation{}, ErrNoResults
	}

	office := payload[0].PostOffice[0]
	return places.ResolvedLocation{
		PlaceName:  office.Name,
		City:       office.District,
		State:      office.State,
		Country:    office.Country,
		PostalCode: postalCode,
	}, nil
}

func (g *GoogleGeocoder) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("geocode: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode: unexpected HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("geocode: failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("geocode: failed to decode response: %w", err)
	}
	return nil
}

// resolveFromComponents maps address components into a ResolvedLocation,
// choosing the most specific component type available as the place name.
func resolveFromComponents(components []googleAddressComponent) places.ResolvedLocation {
	byType := make(map[string]string, len(components))
	for _, c := range components {
		for _, t := range c.Types {
			if _, ok := byType[t]; !ok {
				byType[t] = c.LongName
			}
		}
	}

	var resolved places.ResolvedLocation
	for _, t := range placeNamePreference {
		if name := byType[t]; name != "" {
			resolved.PlaceName = name
			break
		}
	}
	resolved.City = byType["locality"]
	if resolved.City == "" {
		resolved.City = byType["administrative_area_level_2"]
	}
	resolved.State = byType["administrative_area_level_1"]
	resolved.Country = byType["country"]
	resolved.PostalCode = byType["postal_code"]

	return resolved
}
