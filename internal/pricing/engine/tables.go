package engine

import (
	"strings"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
)

// Tables holds the immutable city and condition lookup data. A Tables value
// is built once at startup and shared read-only by every calculator; lookups
// that miss return neutral defaults, never errors.
type Tables struct {
	cities    map[string]pricingdomain.CityProfile
	weather   map[string]float64
	traffic   map[string]float64
	events    map[string]float64
	timeOfDay map[string]float64
}

// defaultCityProfile covers cities we have no data for: a small-market city
// that still reacts to traffic and weather.
var defaultCityProfile = pricingdomain.CityProfile{
	Tier:             pricingdomain.CityTier3,
	BaseFeePercent:   4,
	TrafficSensitive: true,
	WeatherSensitive: true,
}

// DefaultTables returns the built-in lookup data for Indonesian cities and
// delivery conditions.
func DefaultTables() Tables {
	return Tables{
		cities: map[string]pricingdomain.CityProfile{
			"jakarta": {
				Tier:             pricingdomain.CityTier1,
				BaseFeePercent:   6,
				TrafficSensitive: true,
				WeatherSensitive: true,
				FloodProne:       true,
				PremiumMarket:    true,
			},
			"surabaya": {
				Tier:             pricingdomain.CityTier1,
				BaseFeePercent:   6,
				TrafficSensitive: true,
				WeatherSensitive: true,
				HeatSensitive:    true,
				IndustrialCity:   true,
			},
			"bandung": {
				Tier:             pricingdomain.CityTier2,
				BaseFeePercent:   5,
				TrafficSensitive: true,
				WeatherSensitive: true,
				MountainCity:     true,
				TouristCity:      true,
			},
			"medan": {
				Tier:             pricingdomain.CityTier2,
				BaseFeePercent:   5,
				TrafficSensitive: true,
				WeatherSensitive: true,
				HeatSensitive:    true,
			},
			"semarang": {
				Tier:             pricingdomain.CityTier2,
				BaseFeePercent:   5,
				TrafficSensitive: true,
				WeatherSensitive: true,
				FloodProne:       true,
				HeatSensitive:    true,
			},
			"yogyakarta": {
				Tier:             pricingdomain.CityTier2,
				BaseFeePercent:   5,
				WeatherSensitive: true,
				TouristCity:      true,
			},
			"denpasar": {
				Tier:             pricingdomain.CityTier2,
				BaseFeePercent:   5,
				TrafficSensitive: true,
				WeatherSensitive: true,
				TouristCity:      true,
				PremiumMarket:    true,
			},
			"bogor": {
				Tier:             pricingdomain.CityTier2,
				BaseFeePercent:   5,
				TrafficSensitive: true,
				WeatherSensitive: true,
				FloodProne:       true,
				MountainCity:     true,
			},
			"malang": {
				Tier:             pricingdomain.CityTier3,
				BaseFeePercent:   4,
				WeatherSensitive: true,
				MountainCity:     true,
				TouristCity:      true,
			},
			"batam": {
				Tier:             pricingdomain.CityTier3,
				BaseFeePercent:   4,
				TrafficSensitive: true,
				WeatherSensitive: true,
				IndustrialCity:   true,
			},
			"makassar": {
				Tier:             pricingdomain.CityTier3,
				BaseFeePercent:   4,
				TrafficSensitive: true,
				WeatherSensitive: true,
				HeatSensitive:    true,
			},
		},
		weather: map[string]float64{
			"clear":      1.0,
			"light_rain": 1.2,
			"rain":       1.4,
			"heavy_rain": 1.8,
			"storm":      2.2,
			"fog":        1.3,
		},
		traffic: map[string]float64{
			"low":      1.0,
			"moderate": 1.2,
			"heavy":    1.5,
			"gridlock": 1.8,
		},
		events: map[string]float64{
			"national_holiday": 1.3,
			"festival":         1.25,
			"concert":          1.2,
			"sports_event":     1.2,
			"flood_warning":    1.5,
			"payday":           1.15,
		},
		timeOfDay: map[string]float64{
			"normal":       1.0,
			"morning_rush": 1.3,
			"evening_rush": 1.4,
			"night":        1.2,
			"late_night":   1.35,
		},
	}
}

// City resolves a city profile by name, case-insensitively. Unknown cities
// get the default small-market profile.
func (t Tables) City(name string) pricingdomain.CityProfile {
	if profile, ok := t.cities[strings.ToLower(strings.TrimSpace(name))]; ok {
		return profile
	}
	return defaultCityProfile
}

// CityNames returns the known city keys in no particular order.
func (t Tables) CityNames() []string {
	names := make([]string, 0, len(t.cities))
	for name := range t.cities {
		names = append(names, name)
	}
	return names
}

func (t Tables) Weather(key string) float64   { return lookupMultiplier(t.weather, key) }
func (t Tables) Traffic(key string) float64   { return lookupMultiplier(t.traffic, key) }
func (t Tables) Event(key string) float64     { return lookupMultiplier(t.events, key) }
func (t Tables) TimeOfDay(key string) float64 { return lookupMultiplier(t.timeOfDay, key) }

// lookupMultiplier treats absence as neutral: a key we have no entry for
// contributes 1.0, never zero.
func lookupMultiplier(table map[string]float64, key string) float64 {
	if m, ok := table[strings.ToLower(strings.TrimSpace(key))]; ok && m > 0 {
		return m
	}
	return 1.0
}
