package models

// SubscriberRequest is a validated subscriber service request. Values are
// only ever built by the validation package.
type SubscriberRequest struct {
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	BirthDate   Date   `json:"birth_date"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// StorageKey is the natural key of the request. Requests sharing a last and
// first name share a key and overwrite each other.
func (s *SubscriberRequest) StorageKey() string {
	return s.LastName + "_" + s.FirstName
}
