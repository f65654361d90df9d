package user

// User is the typed shape of a user record. Records coming off the store are
// decoded into it at the query boundary; nothing downstream works on raw maps.
type User struct {
	ID          int      `json:"id"`
	Email       string   `json:"email"`
	Password    string   `json:"password,omitempty"`
	FirstName   string   `json:"f_name"`
	LastName    string   `json:"l_name"`
	Phone       string   `json:"phone,omitempty"`
	DateOfBirth string   `json:"dob,omitempty"` // YYYY/MM/DD
	Image       string   `json:"image,omitempty"`
	Division    string   `json:"division,omitempty"`
	District    string   `json:"district,omitempty"`
	Upazila     string   `json:"upazila,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Rating      *int     `json:"rating,omitempty"`
}

// Identity is the authenticated caller, threaded through the request context
// by the JWT middleware instead of living in a package global.
type Identity struct {
	ID    int
	Email string
}
