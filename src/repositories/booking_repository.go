package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrHotelNotFound   = errors.New("hotel not found")
)

const hotelCacheTTL = time.Hour

type BookingRepository interface {
	Save(ctx context.Context, booking *models.Booking) error
	ExistsByRef(ctx context.Context, ref string) (bool, error)
	FindOverlapBooking(ctx context.Context, userID, hotelID uint, checkIn, checkOut types.Date) (bool, error)
	FindByRef(ctx context.Context, userID uint, ref string) (*models.Booking, error)
	UserBookings(ctx context.Context, userID uint) ([]models.Booking, error)
	FindHotelByID(ctx context.Context, hotelID uint) (*models.Hotel, error)
	FindBookingForUser(ctx context.Context, userID, bookingID uint) (*types.InvoiceRecord, error)
}

type bookingRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewBookingRepository wires the store over gorm; rdb is optional and, when
// present, backs the hotel lookup cache.
func NewBookingRepository(db *gorm.DB, rdb *redis.Client) BookingRepository {
	return &bookingRepository{db: db, rdb: rdb}
}

func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) ExistsByRef(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_ref = ?", ref).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindOverlapBooking reports whether the user already holds a booking for the
// hotel whose [check_in, check_out] range touches the given one. Bounds are
// inclusive on both ends, so back-to-back stays sharing a boundary date
// count as overlapping.
func (r *bookingRepository) FindOverlapBooking(ctx context.Context, userID, hotelID uint, checkIn, checkOut types.Date) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND hotel_id = ?", userID, hotelID).
		Where("check_in <= ? AND check_out >= ?", checkOut, checkIn).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookingRepository) FindByRef(ctx context.Context, userID uint, ref string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_ref = ? AND user_id = ?", ref, userID).
		First(&booking).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) UserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindHotelByID(ctx context.Context, hotelID uint) (*models.Hotel, error) {
	if hotel, ok := r.cachedHotel(ctx, hotelID); ok {
		return hotel, nil
	}

	var hotel models.Hotel
	err := r.db.WithContext(ctx).
		Model(&models.Hotel{}).
		Where(&models.Hotel{ID: hotelID}).
		First(&hotel).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	r.cacheHotel(ctx, &hotel)
	return &hotel, nil
}

func (r *bookingRepository) cachedHotel(ctx context.Context, hotelID uint) (*models.Hotel, bool) {
	if r.rdb == nil {
		return nil, false
	}
	val, err := r.rdb.Get(ctx, hotelCacheKey(hotelID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[redis] Error reading hotel cache: %s\n", err.Error())
		}
		return nil, false
	}
	var hotel models.Hotel
	if err := json.Unmarshal([]byte(val), &hotel); err != nil {
		return nil, false
	}
	return &hotel, true
}

func (r *bookingRepository) cacheHotel(ctx context.Context, hotel *models.Hotel) {
	if r.rdb == nil {
		return
	}
	raw, err := json.Marshal(hotel)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, hotelCacheKey(hotel.ID), raw, hotelCacheTTL).Err(); err != nil {
		log.Printf("[redis] Error updating hotel cache: %s\n", err.Error())
	}
}

func hotelCacheKey(hotelID uint) string {
	return fmt.Sprintf("%d:hotel", hotelID)
}

// FindBookingForUser joins booking, owning user and hotel into the flat
// record invoice rendering needs.
func (r *bookingRepository) FindBookingForUser(ctx context.Context, userID, bookingID uint) (*types.InvoiceRecord, error) {
	var row struct {
		BookingRef   string
		CheckIn      types.Date
		CheckOut     types.Date
		RoomType     string
		Guests       int
		TotalPrice   float64
		UserName     string
		UserEmail    string
		HotelName    string
		HotelAddress string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select(
			"bookings.booking_ref",
			"bookings.check_in",
			"bookings.check_out",
			"bookings.room_type",
			"bookings.guests",
			"bookings.total_price",
			"users.name AS user_name",
			"users.email AS user_email",
			"hotels.name AS hotel_name",
			"hotels.address AS hotel_address",
		).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Where("bookings.id = ? AND bookings.user_id = ?", bookingID, userID).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &types.InvoiceRecord{
		InvoiceNo:    row.BookingRef,
		CustomerName: row.UserName,
		HotelName:    row.HotelName,
		HotelAddress: row.HotelAddress,
		CheckIn:      row.CheckIn,
		CheckOut:     row.CheckOut,
		RoomType:     row.RoomType,
		Guests:       row.Guests,
		TotalPrice:   row.TotalPrice,
		Date:         types.NewDate(time.Now()),
	}, nil
}
