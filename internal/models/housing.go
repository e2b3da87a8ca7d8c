package models

import "time"

// Housing is a listing published by an owner.
type Housing struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Address     string       `json:"address"`
	Latitude    *float64     `json:"latitude"`  // Set only when geocoding succeeded
	Longitude   *float64     `json:"longitude"` // Set only when geocoding succeeded
	Price       float64      `json:"price"`
	Rooms       int          `json:"rooms"`
	Bathrooms   int          `json:"bathrooms"`
	Size        float64      `json:"size"`
	Images      []string     `json:"images"`
	Available   bool         `json:"available"`
	OwnerID     int64        `json:"ownerId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Owner       *UserSummary `json:"owner,omitempty"`
}

// OwnerOf returns the user allowed to mutate the listing.
func (h *Housing) OwnerOf() int64 {
	return h.OwnerID
}

// Summary projects the fields embedded in reviews.
func (h *Housing) Summary() *HousingSummary {
	return &HousingSummary{ID: h.ID, Title: h.Title, Address: h.Address}
}

// HousingSummary is the housing projection attached to reviews.
type HousingSummary struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Address string `json:"address"`
}

// Coordinates is a resolved address.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// HousingInput carries a listing to be created.
type HousingInput struct {
	Title       string
	Description string
	Address     string
	Price       float64
	Rooms       int
	Bathrooms   int
	Size        float64
	Images      []string
	Available   *bool // Defaults to true
	OwnerID     int64
}

// HousingPatch is a partial update; nil fields keep their stored value.
type HousingPatch struct {
	Title       *string
	Description *string
	Address     *string
	Price       *float64
	Rooms       *int
	Bathrooms   *int
	Size        *float64
	Images      *[]string
	Available   *bool
	Coordinates *Coordinates // Set by the service when the address changes
}

// Apply returns a copy of h with the patch applied.
func (p HousingPatch) Apply(h Housing) Housing {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Address != nil {
		h.Address = *p.Address
	}
	if p.Price != nil {
		h.Price = *p.Price
	}
	if p.Rooms != nil {
		h.Rooms = *p.Rooms
	}
	if p.Bathrooms != nil {
		h.Bathrooms = *p.Bathrooms
	}
	if p.Size != nil {
		h.Size = *p.Size
	}
	if p.Images != nil {
		h.Images = *p.Images
	}
	if p.Available != nil {
		h.Available = *p.Available
	}
	if p.Coordinates != nil {
		lat, lng := p.Coordinates.Latitude, p.Coordinates.Longitude
		h.Latitude, h.Longitude = &lat, &lng
	}
	return h
}
