package models

// Hotel is reference data; this service reads it but never writes it.
type Hotel struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}
