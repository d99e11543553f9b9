package domain

// Donation purposes.
const (
	PurposeHealth    = "health"
	PurposeEducation = "education"
	PurposeSkills    = "skills"
	PurposeGeneral   = "general"
)

// Donation lifecycle statuses. Bank transfers start pending and are settled
// later; card and mobile money settle in the same request.
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

// Payment methods.
const (
	MethodMobileMoney  = "mobile_money"
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
)

// ValidPurpose reports whether p is one of the fixed donation purposes.
func ValidPurpose(p string) bool {
	switch p {
	case PurposeHealth, PurposeEducation, PurposeSkills, PurposeGeneral:
		return true
	}
	return false
}

// Donation Model. Failed payment attempts are kept on record too.
type Donation struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AccountID     uint   `gorm:"index;not null" json:"account_id"`       // Donating account
	Amount        int64  `gorm:"not null" json:"amount"`                 // Smallest currency unit
	Purpose       string `gorm:"size:20;index" json:"purpose"`           // health, education, skills, general
	PaymentMethod string `gorm:"size:20;index" json:"payment_method"`    // mobile_money, card, bank_transfer
	Status        string `gorm:"size:20;index" json:"status"`            // pending, completed, failed
	TransactionID string `gorm:"size:64;index" json:"transaction_id"`    // Gateway reference
	CreatedAt     int64  `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt     int64  `gorm:"autoUpdateTime:milli" json:"updated_at"`
}
