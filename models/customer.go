package models

import "time"

// Customer represents a person who books time slots.
type Customer struct {
	ID                 string    `bson:"id" json:"id"`                                   // Unique customer identifier (UUID), assigned on creation
	Name               string    `bson:"name" json:"name"`                               // Display name
	Mobile             string    `bson:"mobile" json:"mobile"`                           // Contact number; not required to be unique
	City               string    `bson:"city" json:"city"`                               // Display attribute
	TotalBookings      int       `bson:"total_bookings" json:"totalBookings"`            // Aggregate counter, maintained by the stats service
	TotalCancellations int       `bson:"total_cancellations" json:"totalCancellations"`  // Aggregate counter, maintained by the stats service
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}

// CustomerUpdate carries the editable customer fields for a partial update.
// Zero-valued fields are left untouched.
type CustomerUpdate struct {
	Name   string `json:"name,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	City   string `json:"city,omitempty"`
}
