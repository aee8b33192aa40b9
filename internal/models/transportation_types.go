package models

// TransportationMethod is read-only reference data for 'move' plans.
type TransportationMethod struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
	Icon string `json:"icon" db:"icon"`
}
