// Package filters turns loosely typed query parameters into immutable,
// typed predicates consumed by the repositories.
package filters

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by HousingFromQuery.
const (
	ParamAvailable    = "available"
	ParamMinPrice     = "minPrice"
	ParamMaxPrice     = "maxPrice"
	ParamMinRooms     = "minRooms"
	ParamMaxRooms     = "maxRooms"
	ParamMinBathrooms = "minBathrooms"
	ParamMaxBathrooms = "maxBathrooms"
	ParamAddress      = "address"
)

// HousingFilter is a read-only housing predicate. Build it with HousingBuilder.
type HousingFilter struct {
	available *bool
	price     Range[float64]
	rooms     Range[int]
	bathrooms Range[int]
	address   string
}

func (f HousingFilter) Available() (bool, bool) {
	if f.available == nil {
		return false, false
	}
	return *f.available, true
}

func (f HousingFilter) Price() Range[float64] { return f.price }

func (f HousingFilter) Rooms() Range[int] { return f.rooms }

func (f HousingFilter) Bathrooms() Range[int] { return f.bathrooms }

// Address returns the case-insensitive substring to match, if any.
func (f HousingFilter) Address() (string, bool) {
	return f.address, f.address != ""
}

// HousingBuilder accumulates bounds. Every method returns a new builder,
// so a partially built value can be shared safely.
type HousingBuilder struct {
	f HousingFilter
}

func NewHousingBuilder() HousingBuilder {
	return HousingBuilder{}
}

func (b HousingBuilder) Available(v bool) HousingBuilder {
	b.f.available = &v
	return b
}

func (b HousingBuilder) MinPrice(v float64) HousingBuilder {
	b.f.price = b.f.price.withMin(v)
	return b
}

func (b HousingBuilder) MaxPrice(v float64) HousingBuilder {
	b.f.price = b.f.price.withMax(v)
	return b
}

func (b HousingBuilder) MinRooms(v int) HousingBuilder {
	b.f.rooms = b.f.rooms.withMin(v)
	return b
}

func (b HousingBuilder) MaxRooms(v int) HousingBuilder {
	b.f.rooms = b.f.rooms.withMax(v)
	return b
}

func (b HousingBuilder) MinBathrooms(v int) HousingBuilder {
	b.f.bathrooms = b.f.bathrooms.withMin(v)
	return b
}

func (b HousingBuilder) MaxBathrooms(v int) HousingBuilder {
	b.f.bathrooms = b.f.bathrooms.withMax(v)
	return b
}

// Address sets the substring match. Blank input clears it.
func (b HousingBuilder) Address(s string) HousingBuilder {
	b.f.address = strings.TrimSpace(s)
	return b
}

func (b HousingBuilder) Build() HousingFilter {
	return b.f
}

// HousingFromQuery builds a filter from query parameters. Malformed values
// are dropped instead of failing the whole search.
func HousingFromQuery(q url.Values) HousingFilter {
	b := NewHousingBuilder()

	if v, ok := parseBool(q.Get(ParamAvailable)); ok {
		b = b.Available(v)
	}
	if v, ok := parseFloat(q.Get(ParamMinPrice)); ok {
		b = b.MinPrice(v)
	}
	if v, ok := parseFloat(q.Get(ParamMaxPrice)); ok {
		b = b.MaxPrice(v)
	}
	if v, ok := parseInt(q.Get(ParamMinRooms)); ok {
		b = b.MinRooms(v)
	}
	if v, ok := parseInt(q.Get(ParamMaxRooms)); ok {
		b = b.MaxRooms(v)
	}
	if v, ok := parseInt(q.Get(ParamMinBathrooms)); ok {
		b = b.MinBathrooms(v)
	}
	if v, ok := parseInt(q.Get(ParamMaxBathrooms)); ok {
		b = b.MaxBathrooms(v)
	}
	b = b.Address(q.Get(ParamAddress))

	return b.Build()
}

func parseBool(s string) (bool, bool) {
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return v, err == nil
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil
}
