package ledger

import (
	"errors"
	"fmt"

	"donation_system/internal/domain"
	"donation_system/internal/payment"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecordDonation validates a contribution, runs it through the gateway for
// its payment method and persists the outcome. Validation failures return
// before the gateway is called and before anything is written.
//
// A declined payment is NOT discarded: the row is written with status failed
// for the audit trail and a PaymentDeclinedError is returned alongside it.
func (s *Service) RecordDonation(accountID uint, amount int64, purpose, method string, details payment.Details) (*domain.Donation, error) {
	if amount < s.minDonation {
		return nil, ValidationError{Reason: fmt.Sprintf("Minimum donation is %d", s.minDonation)}
	}
	if !domain.ValidPurpose(purpose) {
		return nil, ValidationError{Reason: "Invalid donation purpose"}
	}
	processor, ok := s.gateways[method]
	if !ok {
		return nil, ValidationError{Reason: "Unsupported payment method"}
	}
	if err := validateDetails(method, details); err != nil {
		return nil, err
	}
	var account domain.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Kind: "account"}
		}
		return nil, StorageError{Err: err}
	}

	result := processor.Process(amount, details, fmt.Sprintf("Donation by %s for %s", account.Username, purpose))

	donation := domain.Donation{
		AccountID:     account.ID,
		Amount:        amount,
		Purpose:       purpose,
		PaymentMethod: method,
		Status:        result.Status,
		TransactionID: result.TransactionID,
	}
	if err := s.db.Create(&donation).Error; err != nil {
		return nil, StorageError{Err: err}
	}
	logrus.WithFields(logrus.Fields{
		"donation_id":    donation.ID,
		"account_id":     account.ID,
		"amount":         amount,
		"purpose":        purpose,
		"payment_method": method,
		"status":         donation.Status,
		"transaction_id": donation.TransactionID,
	}).Info("Donation recorded")
	if !result.Success {
		return &donation, PaymentDeclinedError{Message: result.Message}
	}
	return &donation, nil
}

// validateDetails checks method-specific completeness of the payment details.
func validateDetails(method string, details payment.Details) error {
	switch method {
	case domain.MethodMobileMoney:
		if details.PhoneNumber == "" {
			return ValidationError{Reason: "Mobile money payments require a phone number"}
		}
	case domain.MethodCard:
		if details.CardNumber == "" || details.CardExpiry == "" || details.CardCVC == "" {
			return ValidationError{Reason: "Card payments require number, expiry and cvc"}
		}
	}
	return nil
}

// SettleDonation corrects the status of a pending donation once its
// settlement is confirmed or abandoned, typically a bank transfer. Completed
// and failed donations are immutable.
func (s *Service) SettleDonation(donationID uint, status string) (*domain.Donation, error) {
	if status != domain.DonationCompleted && status != domain.DonationFailed {
		return nil, ValidationError{Reason: "Settlement status must be completed or failed"}
	}
	var donation domain.Donation
	if err := s.db.First(&donation, donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Kind: "donation"}
		}
		return nil, StorageError{Err: err}
	}
	if donation.Status != domain.DonationPending {
		return nil, ValidationError{Reason: "Only pending donations can be settled"}
	}
	if err := s.db.Model(&donation).Update("status", status).Error; err != nil {
		return nil, StorageError{Err: err}
	}
	donation.Status = status
	logrus.WithFields(logrus.Fields{
		"donation_id": donation.ID,
		"status":      status,
	}).Info("Donation settled")
	return &donation, nil
}
