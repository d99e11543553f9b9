package ledger

import (
	"errors"

	"donation_system/internal/domain"

	"gorm.io/gorm"
)

// Impact summarizes one donor's giving history.
type Impact struct {
	TotalDonated        int64 `json:"total_donated"`
	DonationCount       int64 `json:"donation_count"`
	BeneficiariesHelped int64 `json:"beneficiaries_helped"`
}

// ImpactFor aggregates an account's completed donations and the distinct
// beneficiaries reached through them.
//
// Only allocations whose donation_id belongs to one of the account's
// donations count toward BeneficiariesHelped. Allocations with no donation
// link are general-pool money and are attributed to no individual donor.
// This diverges from the legacy report, which joined every allocation
// against every donor's donations regardless of linkage and over-counted.
func (s *Service) ImpactFor(accountID uint) (*Impact, error) {
	var account domain.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Kind: "account"}
		}
		return nil, StorageError{Err: err}
	}

	var totals struct {
		Total int64
		Cnt   int64
	}
	if err := s.db.Model(&domain.Donation{}).
		Where("account_id = ? AND status = ?", accountID, domain.DonationCompleted).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS cnt").
		Scan(&totals).Error; err != nil {
		return nil, StorageError{Err: err}
	}

	ownDonations := s.db.Model(&domain.Donation{}).
		Select("id").
		Where("account_id = ?", accountID)
	var helped int64
	if err := s.db.Model(&domain.Allocation{}).
		Where("status = ?", domain.AllocationAllocated).
		Where("donation_id IN (?)", ownDonations).
		Distinct("beneficiary_id").
		Count(&helped).Error; err != nil {
		return nil, StorageError{Err: err}
	}

	return &Impact{
		TotalDonated:        totals.Total,
		DonationCount:       totals.Cnt,
		BeneficiariesHelped: helped,
	}, nil
}
