package ledger

import (
	"errors"
	"sync"

	"donation_system/internal/domain"  // Ledger record models
	"donation_system/internal/payment" // Payment collaborator interface

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// DefaultMinDonation is the smallest accepted contribution, in the smallest
// currency unit.
const DefaultMinDonation = 1000

// Service is the fund-accounting core: donation recording, balance
// derivation, allocation and impact aggregation, all against one injected
// storage handle.
//
// mu is the single-writer queue for allocations. The balance check and the
// insert it guards must not interleave with another allocation, so every
// attempt holds the lock for its whole transaction.
type Service struct {
	db          *gorm.DB
	gateways    payment.Registry
	minDonation int64
	mu          sync.Mutex
}

// NewService wires the core against a storage handle and a gateway registry.
// A non-positive minDonation falls back to DefaultMinDonation.
func NewService(db *gorm.DB, gateways payment.Registry, minDonation int64) *Service {
	if minDonation <= 0 {
		minDonation = DefaultMinDonation
	}
	return &Service{db: db, gateways: gateways, minDonation: minDonation}
}

// Summary is the ledger-wide fund position.
type Summary struct {
	TotalDonated   int64 `json:"total_donated"`
	TotalAllocated int64 `json:"total_allocated"`
	Available      int64 `json:"available"`
}

// FundSummary derives the fund position from completed donations and live
// allocations. Available is floored at zero.
func (s *Service) FundSummary() (*Summary, error) {
	return s.summary(s.db)
}

// summary runs the aggregate queries on tx so Allocate can reuse it inside
// its own transaction.
func (s *Service) summary(tx *gorm.DB) (*Summary, error) {
	var donated, allocated int64
	if err := tx.Model(&domain.Donation{}).
		Where("status = ?", domain.DonationCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&donated).Error; err != nil {
		return nil, StorageError{Err: err}
	}
	if err := tx.Model(&domain.Allocation{}).
		Where("status = ?", domain.AllocationAllocated).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&allocated).Error; err != nil {
		return nil, StorageError{Err: err}
	}
	available := donated - allocated
	if available < 0 {
		available = 0
	}
	return &Summary{TotalDonated: donated, TotalAllocated: allocated, Available: available}, nil
}

// AvailableBalance reports the funds not yet committed to a beneficiary.
func (s *Service) AvailableBalance() (int64, error) {
	sum, err := s.FundSummary()
	if err != nil {
		return 0, err
	}
	return sum.Available, nil
}

// Allocate commits amount to a beneficiary. donationID links the allocation
// to the donation funding it; nil draws from the general pool.
//
// The balance re-read, the allocation insert and the beneficiary counter
// update run in one transaction under the writer lock, so a concurrent
// allocation can never see a balance that an in-flight allocation is about
// to consume. Either every step persists or none does.
func (s *Service) Allocate(donationID *uint, beneficiaryID uint, amount int64, supportType string, accountID uint) (*domain.Allocation, error) {
	if amount <= 0 {
		return nil, ValidationError{Reason: "Allocation amount must be positive"}
	}
	if !domain.ValidSupportType(supportType) {
		return nil, ValidationError{Reason: "Invalid support type"}
	}
	var beneficiary domain.Beneficiary
	if err := s.db.First(&beneficiary, beneficiaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Kind: "beneficiary"}
		}
		return nil, StorageError{Err: err}
	}
	if donationID != nil {
		var donation domain.Donation
		if err := s.db.First(&donation, *donationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundError{Kind: "donation"}
			}
			return nil, StorageError{Err: err}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	allocation := domain.Allocation{
		DonationID:    donationID,
		BeneficiaryID: beneficiaryID,
		AccountID:     accountID,
		Amount:        amount,
		SupportType:   supportType,
		Status:        domain.AllocationAllocated,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sum, err := s.summary(tx)
		if err != nil {
			return err
		}
		if amount > sum.Available {
			return InsufficientFundsError{Available: sum.Available}
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return StorageError{Err: err}
		}
		res := tx.Model(&domain.Beneficiary{}).
			Where("id = ?", beneficiaryID).
			Update("support_received", gorm.Expr("support_received + ?", amount))
		if res.Error != nil {
			return StorageError{Err: res.Error}
		}
		if res.RowsAffected == 0 {
			// Beneficiary vanished since the pre-check; rolls the
			// insert back with it.
			return NotFoundError{Kind: "beneficiary"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"allocation_id":  allocation.ID,
		"beneficiary_id": beneficiaryID,
		"account_id":     accountID,
		"amount":         amount,
		"support_type":   supportType,
	}).Info("Allocation recorded")
	return &allocation, nil
}
