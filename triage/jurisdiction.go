package triage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/geocode"
	"github.com/linesmerrill/civic-report-api/models"
)

// Method records which stage of the resolver found a municipality
type Method string

// Resolution methods
const (
	MethodNearest  Method = "nearest"
	MethodDistrict Method = "district"
)

// DefaultRadiusMeters bounds the nearest-center search
const DefaultRadiusMeters = 20000

// MunicipalityStore is the geospatial read side the resolver needs
type MunicipalityStore interface {
	Nearest(ctx context.Context, point models.GeoPoint, maxDistanceMeters float64) (*models.Municipality, error)
	MatchDistrict(ctx context.Context, district string) (*models.Municipality, error)
}

// Geocoder turns a point into a district name
type Geocoder interface {
	District(ctx context.Context, longitude, latitude float64) geocode.Result
}

// Resolver finds the municipality that owns a point: the nearest center
// within RadiusMeters, then a district match on the reverse geocoded name.
type Resolver struct {
	Municipalities MunicipalityStore
	Geocoder       Geocoder
	RadiusMeters   float64
}

// NewResolver returns a resolver. A nil geocoder disables the district stage.
func NewResolver(municipalities MunicipalityStore, geocoder Geocoder, radiusMeters float64) *Resolver {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &Resolver{
		Municipalities: municipalities,
		Geocoder:       geocoder,
		RadiusMeters:   radiusMeters,
	}
}

// Resolve returns the owning municipality and how it was found, or
// ErrNoJurisdiction. A failing geocoder only skips the district stage.
func (r *Resolver) Resolve(ctx context.Context, point models.GeoPoint) (*models.Municipality, Method, error) {
	m, err := r.Municipalities.Nearest(ctx, point, r.RadiusMeters)
	if err != nil {
		return nil, "", fmt.Errorf("failed nearest municipality lookup: %w", err)
	}
	if m != nil {
		return m, MethodNearest, nil
	}

	if r.Geocoder == nil {
		return nil, "", ErrNoJurisdiction
	}
	res := r.Geocoder.District(ctx, point.Longitude(), point.Latitude())
	switch res.Outcome {
	case geocode.Unavailable:
		zap.S().Warnw("district fallback skipped", "lng", point.Longitude(), "lat", point.Latitude(), "error", res.Err)
		return nil, "", ErrNoJurisdiction
	case geocode.NotFound:
		return nil, "", ErrNoJurisdiction
	}

	for _, name := range districtCandidates(res.District) {
		m, err = r.Municipalities.MatchDistrict(ctx, name)
		if err != nil {
			return nil, "", fmt.Errorf("failed district municipality lookup: %w", err)
		}
		if m != nil {
			return m, MethodDistrict, nil
		}
	}
	return nil, "", ErrNoJurisdiction
}

var districtSuffixes = []string{" district", " county"}

// districtCandidates yields the geocoded name and, when it carries an
// administrative suffix, the bare name as a second try
func districtCandidates(district string) []string {
	district = strings.TrimSpace(district)
	candidates := []string{district}
	lower := strings.ToLower(district)
	for _, suffix := range districtSuffixes {
		if strings.HasSuffix(lower, suffix) {
			if bare := strings.TrimSpace(district[:len(district)-len(suffix)]); bare != "" {
				candidates = append(candidates, bare)
			}
			break
		}
	}
	return candidates
}
