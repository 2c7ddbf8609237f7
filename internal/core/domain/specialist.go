package domain

import (
	"errors"
	"time"
)

// SpecialistStatus marks whether a specialist currently accepts bookings.
type SpecialistStatus string

const (
	SpecialistActive  SpecialistStatus = "Active"
	SpecialistOnLeave SpecialistStatus = "OnLeave"
)

var ErrSpecialistNotFound = errors.New("specialist not found")

// Specialist is a service-providing professional who owns a set of bookings.
// Fee is a per-session amount in whole currency units; it is advisory only.
type Specialist struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	Name      string           `json:"name" bson:"name"`
	Specialty string           `json:"specialty" bson:"specialty"`
	Bio       string           `json:"bio" bson:"bio"`
	Fee       int64            `json:"fee" bson:"fee"`
	Photo     string           `json:"photo,omitempty" bson:"photo,omitempty"`
	Status    SpecialistStatus `json:"status" bson:"status"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}
