package domain

// Profile is the backend's view of the authenticated actor behind a
// credential. Role-specific fields are sparse: business fields only appear
// for clients, birth-chart fields only for end users.
type Profile struct {
	ID     string `json:"id,omitempty"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status string `json:"status,omitempty"`

	// Client fields.
	BusinessName  string `json:"businessName,omitempty"`
	BusinessType  string `json:"businessType,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`

	// End-user fields.
	Name         string `json:"name,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	DOB          string `json:"dob,omitempty"`
	TimeOfBirth  string `json:"timeOfBirth,omitempty"`
	PlaceOfBirth string `json:"placeOfBirth,omitempty"`
	Gowthra      string `json:"gowthra,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// Session pairs a role with its live credential and last-fetched profile.
// It exists only for the duration of a request; the durable state is the
// per-role credential store.
type Session struct {
	Role    Role
	Token   string
	Profile *Profile
}
