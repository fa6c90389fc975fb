package models

import (
	"hbs/src/types"
)

type Booking struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	BookingRef    string     `gorm:"size:6;uniqueIndex" json:"booking_reference,omitempty"`
	UserID        uint       `gorm:"index:idx_bookings_user_hotel" json:"user_id,omitempty"`
	HotelID       uint       `gorm:"index:idx_bookings_user_hotel" json:"hotel_id,omitempty"`
	RoomType      string     `json:"room_type,omitempty"`
	PricePerNight float64    `json:"price_per_night,omitempty"`
	CheckIn       types.Date `gorm:"type:date" json:"check_in"`
	CheckOut      types.Date `gorm:"type:date" json:"check_out"`
	Guests        int        `json:"guests,omitempty"`
	TotalPrice    float64    `json:"total_price,omitempty"`
	PaymentStatus string     `gorm:"default:'pending'" json:"payment_status,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Hotel *Hotel `gorm:"foreignKey:hotel_id" json:"hotel,omitempty"`

	types.Timestamps
}
