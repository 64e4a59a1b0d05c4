package dataset

import (
	"bikeshare/domain/entities/trip"
)

// Schema records which optional attributes a source carries. It is decided once at load time
// and shared by every record of the dataset.
// + HasGender: the source has a gender column
// + HasBirthYear: the source has a birth year column
type Schema struct {
	HasGender    bool `json:"has_gender"`
	HasBirthYear bool `json:"has_birth_year"`
}

// Dataset ordered, read-only sequence of trips of a city.
type Dataset struct {
	city   string
	schema Schema
	trips  []*trip.TripData
}

func NewDataset(city string, schema Schema, trips []*trip.TripData) *Dataset {
	if trips == nil {
		trips = []*trip.TripData{}
	}
	return &Dataset{
		city:   city,
		schema: schema,
		trips:  trips,
	}
}

func (d *Dataset) GetCity() string {
	return d.city
}

func (d *Dataset) GetSchema() Schema {
	return d.schema
}

func (d *Dataset) Len() int {
	return len(d.trips)
}

func (d *Dataset) IsEmpty() bool {
	return len(d.trips) == 0
}

// At returns the trip at position idx in source order
func (d *Dataset) At(idx int) *trip.TripData {
	return d.trips[idx]
}

// Batch returns at most size trips starting at offset. An offset past the end returns an empty batch.
func (d *Dataset) Batch(offset int, size int) []*trip.TripData {
	if offset < 0 || size <= 0 || offset >= len(d.trips) {
		return []*trip.TripData{}
	}
	end := offset + size
	if end > len(d.trips) {
		end = len(d.trips)
	}
	return d.trips[offset:end:end]
}

// Restrict returns a new dataset with the same city and schema containing the trips that match the predicate,
// in the same relative order
func (d *Dataset) Restrict(keep func(*trip.TripData) bool) *Dataset {
	var kept []*trip.TripData
	for _, td := range d.trips {
		if keep(td) {
			kept = append(kept, td)
		}
	}
	return NewDataset(d.city, d.schema, kept)
}
