// Package geo resolves IP addresses against a local MaxMind GeoIP2/GeoLite2
// City database.
package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/tbckr/insight/internal/apperr"
)

// Location is the subset of a City record reported in the detail phase.
type Location struct {
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimeZone    string  `json:"timeZone,omitempty"`
}

// cityReader is the part of *geoip2.Reader used here.
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// Reader looks up IP addresses in an open database.
type Reader struct {
	db cityReader
}

// Open opens the database at path.
func Open(path string) (*Reader, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GeoIP database: %w", err)
	}
	return &Reader{db: db}, nil
}

// Close releases the database.
func (r *Reader) Close() error { return r.db.Close() }

// Locate returns the location of ip, or nil when the database has no record.
func (r *Reader) Locate(ip string) (*Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("%w: %q is not an IP address", apperr.ErrInvalidInput, ip)
	}
	rec, err := r.db.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup %s: %w", ip, err)
	}
	return fromCity(rec), nil
}

func fromCity(rec *geoip2.City) *Location {
	if rec == nil || (rec.Country.IsoCode == "" && len(rec.City.Names) == 0) {
		return nil
	}
	return &Location{
		City:        rec.City.Names["en"],
		Country:     rec.Country.Names["en"],
		CountryCode: rec.Country.IsoCode,
		Latitude:    rec.Location.Latitude,
		Longitude:   rec.Location.Longitude,
		TimeZone:    rec.Location.TimeZone,
	}
}
