package fleet

import "time"

// Vehicle is one training car of the school's fleet.
type Vehicle struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Brand           string    `json:"brand" bson:"brand"`
	Model           string    `json:"model" bson:"model"`
	Year            int       `json:"year" bson:"year"`
	PlateNumber     string    `json:"plateNumber" bson:"plateNumber"`
	Transmission    string    `json:"transmission" bson:"transmission"`
	LicenseCategory string    `json:"licenseCategory" bson:"licenseCategory"`
	Status          string    `json:"status" bson:"status"`
	ImageURL        string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Update is a partial vehicle change. Nil fields keep their prior value.
type Update struct {
	Brand           *string `json:"brand"`
	Model           *string `json:"model"`
	Year            *int    `json:"year"`
	PlateNumber     *string `json:"plateNumber"`
	Transmission    *string `json:"transmission"`
	LicenseCategory *string `json:"licenseCategory"`
	Status          *string `json:"status"`
	ImageURL        *string `json:"imageUrl"`
}
