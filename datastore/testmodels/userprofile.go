package testmodels

import "github.com/go-openapi/strfmt"

type UserProfile struct {

	// Unique identifier for the user profile.
	// Required: true
	ID *string `json:"Id" firestore:"-"`

	// Email address of the user.
	// Required: true
	Email *string `json:"Email" firestore:"email"`

	// Display name of the user.
	// Required: true
	DisplayName *string `json:"DisplayName" firestore:"displayName"`

	// country code
	CountryCode string `json:"CountryCode,omitempty" firestore:"countryCode,omitempty"`

	// Timestamp when the profile was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt" firestore:"createdAt"`

	// Timestamp when the profile was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt" firestore:"updatedAt"`
}
