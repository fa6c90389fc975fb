package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const DATE_PARSE_FORMAT = "2006-01-02"

const (
	PAYMENT_PENDING = "pending"
	PAYMENT_PAID    = "paid"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

// Date is a calendar day without a time component. It travels as
// "2006-01-02" both in JSON and in the database.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DATE_PARSE_FORMAT, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return d.Format(DATE_PARSE_FORMAT)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(DATE_PARSE_FORMAT))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return errors.New("unsupported column type for date")
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateBookingRequestBody struct {
	HotelID       uint    `json:"hotel_id" binding:"required"`
	RoomType      string  `json:"room_type" binding:"required"`
	Guests        int     `json:"guests" binding:"required"`
	CheckIn       string  `json:"check_in" binding:"required,bookingdate"`
	CheckOut      string  `json:"check_out" binding:"required,bookingdate"`
	PricePerNight float64 `json:"price_per_night"`
	PaymentStatus string  `json:"payment_status"`
}

type RegisteredUser struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// InvoiceRecord is the flat projection of booking+user+hotel handed to the
// PDF renderer.
type InvoiceRecord struct {
	InvoiceNo    string  `json:"invoice_no"`
	CustomerName string  `json:"customer_name"`
	HotelName    string  `json:"hotel_name"`
	HotelAddress string  `json:"hotel_address"`
	CheckIn      Date    `json:"check_in"`
	CheckOut     Date    `json:"check_out"`
	RoomType     string  `json:"room_type"`
	Guests       int     `json:"guests"`
	TotalPrice   float64 `json:"total_price"`
	Date         Date    `json:"date"`
}
