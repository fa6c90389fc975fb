package services

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"

	"hbs/src/apperrors"
	"hbs/src/models"
	"hbs/src/repositories"
	"hbs/src/types"

	"gorm.io/gorm"
)

const (
	MAX_GUESTS_PER_ROOM = 4

	bookingRefAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bookingRefLength   = 6

	// A single draw collides with probability refs/36^6, so one attempt
	// almost always suffices; the cap keeps the loop live if storage is in
	// an adversarial state.
	maxRefAttempts = 5
)

type BookingService interface {
	Create(ctx context.Context, userID uint, req *types.CreateBookingRequestBody) (*models.Booking, error)
	UserBookings(ctx context.Context, userID uint) ([]models.Booking, error)
	FindByRef(ctx context.Context, userID uint, ref string) (*models.Booking, error)
}

type bookingService struct {
	repo repositories.BookingRepository
}

func NewBookingService(repo repositories.BookingRepository) BookingService {
	return &bookingService{repo: repo}
}

func (s *bookingService) Create(ctx context.Context, userID uint, req *types.CreateBookingRequestBody) (*models.Booking, error) {
	if req.RoomType == "" || req.Guests == 0 || req.CheckIn == "" || req.CheckOut == "" {
		return nil, apperrors.Validation("missing required booking fields")
	}

	checkIn, err := types.ParseDate(req.CheckIn)
	if err != nil {
		return nil, apperrors.Validation("check_in must be a date in YYYY-MM-DD format")
	}
	checkOut, err := types.ParseDate(req.CheckOut)
	if err != nil {
		return nil, apperrors.Validation("check_out must be a date in YYYY-MM-DD format")
	}
	if !checkOut.After(checkIn.Time) {
		return nil, apperrors.Validation("check-out date must be after check-in date")
	}
	if req.Guests < 1 || req.Guests > MAX_GUESTS_PER_ROOM {
		return nil, apperrors.Validation("invalid number of guests for this room type")
	}

	overlaps, err := s.repo.FindOverlapBooking(ctx, userID, req.HotelID, checkIn, checkOut)
	if err != nil {
		return nil, apperrors.Internal("failed to check for overlapping bookings", err)
	}
	if overlaps {
		return nil, apperrors.Conflict("duplicate booking detected: you already have a booking for this hotel during the selected dates")
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = types.PAYMENT_PENDING
	}
	nights := int(checkOut.Sub(checkIn.Time).Hours() / 24)
	booking := models.Booking{
		UserID:        userID,
		HotelID:       req.HotelID,
		RoomType:      req.RoomType,
		Guests:        req.Guests,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		PricePerNight: req.PricePerNight,
		TotalPrice:    req.PricePerNight * float64(nights),
		PaymentStatus: paymentStatus,
	}

	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		ref, err := generateBookingRef(bookingRefLength)
		if err != nil {
			return nil, apperrors.Internal("failed to generate booking reference", err)
		}
		exists, err := s.repo.ExistsByRef(ctx, ref)
		if err != nil {
			return nil, apperrors.Internal("failed to check booking reference", err)
		}
		if exists {
			continue
		}

		booking.ID = 0
		booking.BookingRef = ref
		err = s.repo.Save(ctx, &booking)
		if err == nil {
			log.Printf("Booking [%s] created for user [%d] hotel [%d]\n", ref, userID, req.HotelID)
			return &booking, nil
		}
		// The unique index on booking_ref closes the window between the
		// existence check and the insert; a duplicate-key error means we
		// lost that race and should redraw.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, apperrors.Internal("failed to save booking", err)
	}

	return nil, apperrors.Internal("could not allocate a unique booking reference", nil)
}

func (s *bookingService) UserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	bookings, err := s.repo.UserBookings(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) FindByRef(ctx context.Context, userID uint, ref string) (*models.Booking, error) {
	booking, err := s.repo.FindByRef(ctx, userID, ref)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to retrieve booking", err)
	}
	return booking, nil
}

func generateBookingRef(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(bookingRefAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = bookingRefAlphabet[n.Int64()]
	}
	return string(buf), nil
}
