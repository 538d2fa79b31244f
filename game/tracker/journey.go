package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"time"
)

// JourneyFile is the content file holding the journey
const JourneyFile = "santa-journey.json"

const (
	MinStops         = 10
	MaxDeliveries    = 10_000_000_000
	HomeCity         = "North Pole"
	minFunFactLength = 10
	earthRadiusKm    = 6371.0
)

var ErrInvalidJourney = errors.New("invalid journey")

// Stop is one city on the route
type Stop struct {
	ID          int       `json:"id"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	ArrivalTime time.Time `json:"arrivalTime"`
	FunFact     string    `json:"funFact"`
	Deliveries  int64     `json:"deliveries"`
}

// ParseJourney decodes and validates a journey document
func ParseJourney(b []byte) ([]Stop, error) {
	var stops []Stop
	if err := json.Unmarshal(b, &stops); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJourney, err)
	}
	if err := ValidateJourney(stops); err != nil {
		return nil, err
	}
	return stops, nil
}

// LoadJourney reads santa-journey.json from fsys
func LoadJourney(fsys fs.FS) ([]Stop, error) {
	b, err := fs.ReadFile(fsys, JourneyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", JourneyFile, err)
	}
	return ParseJourney(b)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidJourney, fmt.Sprintf(format, args...))
}

func isHome(s Stop) bool {
	return s.City == HomeCity && s.Lat == 90
}

// ValidateJourney checks the route invariants
func ValidateJourney(stops []Stop) error {
	if len(stops) < MinStops {
		return invalid("need at least %d stops, got %d", MinStops, len(stops))
	}
	if !isHome(stops[0]) || !isHome(stops[len(stops)-1]) {
		return invalid("journey must start and end at the %s (lat 90)", HomeCity)
	}

	ids := make(map[int]bool, len(stops))
	for i, s := range stops {
		switch {
		case ids[s.ID]:
			return invalid("stop %d: duplicate id %d", i, s.ID)
		case strings.TrimSpace(s.City) == "" || strings.TrimSpace(s.Country) == "":
			return invalid("stop %d: city and country are required", i)
		case s.Lat < -90 || s.Lat > 90 || s.Lng < -180 || s.Lng > 180:
			return invalid("stop %d (%s): coordinates out of range", i, s.City)
		case s.ArrivalTime.IsZero():
			return invalid("stop %d (%s): arrival time is required", i, s.City)
		case len([]rune(strings.TrimSpace(s.FunFact))) <= minFunFactLength:
			return invalid("stop %d (%s): fun fact is too short", i, s.City)
		case s.Deliveries < 0 || s.Deliveries > MaxDeliveries:
			return invalid("stop %d (%s): deliveries out of range", i, s.City)
		}
		ids[s.ID] = true

		if i == 0 {
			continue
		}
		prev := stops[i-1]
		if s.ArrivalTime.Before(prev.ArrivalTime) {
			return invalid("stop %d (%s): arrives before %s", i, s.City, prev.City)
		}
		if s.Deliveries < prev.Deliveries {
			return invalid("stop %d (%s): deliveries decrease", i, s.City)
		}
	}
	return nil
}

// Distance returns the great-circle distance between two stops in km
func Distance(a, b Stop) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// RouteDistance sums the leg distances over the first n stops
func RouteDistance(stops []Stop, n int) float64 {
	if n > len(stops) {
		n = len(stops)
	}
	total := 0.0
	for i := 1; i < n; i++ {
		total += Distance(stops[i-1], stops[i])
	}
	return total
}

// Location is where Santa is at a point in time
type Location struct {
	Status  string `json:"status"`
	Current *Stop  `json:"current,omitempty"`
	Next    *Stop  `json:"next,omitempty"`
}

// Location statuses
const (
	StatusPreparing = "preparing"
	StatusEnRoute   = "en-route"
	StatusComplete  = "complete"
)

// LocationAt returns the last stop reached by t and the one after it
func LocationAt(stops []Stop, t time.Time) Location {
	if len(stops) == 0 {
		return Location{Status: StatusPreparing}
	}
	if t.Before(stops[0].ArrivalTime) {
		next := stops[0]
		return Location{Status: StatusPreparing, Next: &next}
	}

	i := 0
	for i+1 < len(stops) && !t.Before(stops[i+1].ArrivalTime) {
		i++
	}
	cur := stops[i]
	if i == len(stops)-1 {
		return Location{Status: StatusComplete, Current: &cur}
	}
	next := stops[i+1]
	return Location{Status: StatusEnRoute, Current: &cur, Next: &next}
}
