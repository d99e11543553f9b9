package domain

// Support types a beneficiary can receive.
const (
	SupportHealth    = "health"
	SupportEducation = "education"
	SupportSkills    = "skills"
)

// Beneficiary lifecycle statuses.
const (
	BeneficiaryPending  = "pending"
	BeneficiaryActive   = "active"
	BeneficiaryInactive = "inactive"
)

// ValidSupportType reports whether s is one of the fixed support types.
func ValidSupportType(s string) bool {
	switch s {
	case SupportHealth, SupportEducation, SupportSkills:
		return true
	}
	return false
}

// Beneficiary Model
type Beneficiary struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	FullName        string `gorm:"not null" json:"full_name"`
	Age             int    `json:"age"`
	Gender          string `gorm:"size:10" json:"gender"`
	Location        string `json:"location"`
	SupportType     string `gorm:"size:20;index" json:"support_type"`          // health, education, skills
	Status          string `gorm:"size:20;default:pending" json:"status"`      // pending, active, inactive
	SupportReceived int64  `gorm:"not null;default:0" json:"support_received"` // Written only by the allocation engine
	Notes           string `gorm:"size:500" json:"notes"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt       int64  `gorm:"autoUpdateTime:milli" json:"updated_at"`
}
