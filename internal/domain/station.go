// Package domain contains the core data types for the rail ticketing service.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (journey, repo, service, handler).
package domain

import "time"

// Station is a single stop location on the rail network.
// Stations are immutable after registration; trains reference them by ID.
type Station struct {
	ID        int64     `json:"station_id"`
	Name      string    `json:"station_name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}
