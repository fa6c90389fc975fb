package services

import (
	"context"
	"errors"
	"fmt"

	"hbs/src/apperrors"
	"hbs/src/lib"
	"hbs/src/repositories"
)

// Invoice is a rendered document ready to be written to the response.
type Invoice struct {
	Filename string
	Content  []byte
}

type InvoiceService interface {
	GenerateForUser(ctx context.Context, userID, bookingID uint) (*Invoice, error)
}

type invoiceService struct {
	bookings repositories.BookingRepository
	renderer lib.InvoiceRenderer
}

func NewInvoiceService(bookings repositories.BookingRepository, renderer lib.InvoiceRenderer) InvoiceService {
	return &invoiceService{bookings: bookings, renderer: renderer}
}

func (s *invoiceService) GenerateForUser(ctx context.Context, userID, bookingID uint) (*Invoice, error) {
	record, err := s.bookings.FindBookingForUser(ctx, userID, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.NotFound("booking not found or does not belong to user")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}

	content, err := s.renderer.RenderInvoice(record)
	if err != nil {
		return nil, apperrors.Internal("failed to render invoice", err)
	}

	return &Invoice{
		Filename: fmt.Sprintf("invoice_%s.pdf", record.InvoiceNo),
		Content:  content,
	}, nil
}
