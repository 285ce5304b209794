package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/models"
	"cabsy/internal/repositories"
)

// PaymentService records payments for completed rides. There is no gateway;
// Settle stands in for one by marking the payment completed straight away.
type PaymentService struct {
	payments PaymentStore
	rides    RideStore
	now      func() time.Time
	newTxnID func() string
}

func NewPaymentService(payments PaymentStore, rides RideStore) *PaymentService {
	return &PaymentService{
		payments: payments,
		rides:    rides,
		now:      time.Now,
		newTxnID: NewTransactionID,
	}
}

// NewTransactionID returns a placeholder gateway reference.
func NewTransactionID() string {
	return "TXN-" + uuid.NewString()
}

// CreatePayment records a PENDING payment for a completed ride. A ride can be
// paid for once.
func (s *PaymentService) CreatePayment(ctx context.Context, rideID uint, amount float64, method string) (*models.Payment, error) {
	ride, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, notFound("ride", rideID)
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, validationError("amount must be positive")
	}
	if method == "" {
		return nil, validationError("payment method is required")
	}
	if ride.Status != models.RideCompleted {
		return nil, invalidState("ride %d is %s, not COMPLETED", rideID, ride.Status)
	}

	existing, err := s.payments.FindByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validationError("ride %d already has a payment", rideID)
	}

	p := &models.Payment{
		RideID:    rideID,
		UserID:    ride.UserID,
		Amount:    amount,
		Method:    method,
		Status:    models.PaymentPending,
		Timestamp: s.now(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validationError("ride %d already has a payment", rideID)
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"payment_id": p.ID, "ride_id": rideID, "amount": amount}).Info("payment created")
	return p, nil
}

// UpdatePaymentStatus overwrites status and transaction id. An empty
// transactionID clears it.
func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, paymentID uint, status models.PaymentStatus, transactionID string) (*models.Payment, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("payment", paymentID)
	}

	from := p.Status
	p.Status = status
	p.TransactionID = nil
	if txn := strings.TrimSpace(transactionID); txn != "" {
		p.TransactionID = &txn
	}
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, conflict(err, "transaction id")
	}
	logrus.WithFields(logrus.Fields{"payment_id": p.ID, "from": from, "to": status}).Info("payment status changed")
	return p, nil
}

// Settle records the payer's payment for their completed ride and marks it
// COMPLETED with a generated transaction id. A PENDING payment left by an
// earlier attempt is completed instead of rejected.
func (s *PaymentService) Settle(ctx context.Context, payerID, rideID uint, amount float64, method string) (*models.Payment, error) {
	ride, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, notFound("ride", rideID)
	}
	if ride.UserID != payerID {
		return nil, forbidden("ride %d belongs to another user", rideID)
	}

	p, err := s.payments.FindByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	switch {
	case p == nil:
		if p, err = s.CreatePayment(ctx, rideID, amount, method); err != nil {
			return nil, err
		}
	case p.Status == models.PaymentPending:
		logrus.WithFields(logrus.Fields{"payment_id": p.ID, "ride_id": rideID}).Info("resuming pending payment")
	default:
		return nil, validationError("ride %d already has a payment", rideID)
	}
	return s.UpdatePaymentStatus(ctx, p.ID, models.PaymentCompleted, s.newTxnID())
}

// GetPayment returns nil when the payment does not exist.
func (s *PaymentService) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	return s.payments.FindByID(ctx, id)
}

// GetPaymentByRide returns nil when the ride has no payment.
func (s *PaymentService) GetPaymentByRide(ctx context.Context, rideID uint) (*models.Payment, error) {
	return s.payments.FindByRide(ctx, rideID)
}
