package domain

// Allocation statuses.
const (
	AllocationAllocated = "allocated"
	AllocationReversed  = "reversed"
)

// Allocation Model. Commits a slice of ledger funds to one beneficiary.
type Allocation struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	DonationID    *uint  `gorm:"index" json:"donation_id"`           // Nil for general-pool allocations
	BeneficiaryID uint   `gorm:"index;not null" json:"beneficiary_id"`
	AccountID     uint   `gorm:"index" json:"account_id"`            // Allocating administrator
	Amount        int64  `gorm:"not null" json:"amount"`             // Smallest currency unit
	SupportType   string `gorm:"size:20" json:"support_type"`        // health, education, skills
	Status        string `gorm:"size:20;index" json:"status"`        // allocated, reversed
	CreatedAt     int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}
