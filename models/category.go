package models

import "strings"

// Category is the closed set of complaint categories. Both report validation
// and department routing read from this one list.
type Category string

// Report categories
const (
	CategoryInfrastructure Category = "Infrastructure"
	CategorySanitation     Category = "Sanitation"
	CategoryStreetLighting Category = "StreetLighting"
	CategoryWaterSupply    Category = "WaterSupply"
	CategoryTraffic        Category = "Traffic"
	CategoryParks          Category = "Parks"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryInfrastructure,
	CategorySanitation,
	CategoryStreetLighting,
	CategoryWaterSupply,
	CategoryTraffic,
	CategoryParks,
	CategoryOther,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Code returns the 4-letter prefix used in human readable report IDs,
// e.g. "INFR" for Infrastructure.
func (c Category) Code() string {
	s := strings.ToUpper(string(c))
	if len(s) < 4 {
		return s
	}
	return s[:4]
}

// ParseCategory matches s against the known categories ignoring case
func ParseCategory(s string) (Category, bool) {
	for _, known := range Categories {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, true
		}
	}
	return "", false
}

// Urgency is the reporter supplied severity of a complaint
type Urgency string

// Urgency levels
const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// ParseUrgency returns the urgency for s. An empty string yields the default
// of medium.
func ParseUrgency(s string) (Urgency, bool) {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return UrgencyMedium, true
	case UrgencyLow:
		return UrgencyLow, true
	case UrgencyMedium:
		return UrgencyMedium, true
	case UrgencyHigh:
		return UrgencyHigh, true
	case UrgencyCritical:
		return UrgencyCritical, true
	}
	return "", false
}
