package models

import (
	"errors"
	"math"
)

// GeoPoint is a GeoJSON point as stored in mongo. Coordinates are ordered
// [longitude, latitude] so 2dsphere indexes can be built on it.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude and latitude
func NewGeoPoint(longitude, latitude float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

// Longitude returns the first coordinate, or 0 for an empty point
func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Latitude returns the second coordinate, or 0 for an empty point
func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// ValidateCoordinates checks that a longitude/latitude pair is finite and in range
func ValidateCoordinates(longitude, latitude float64) error {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if longitude < -180 || longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	if latitude < -90 || latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}
