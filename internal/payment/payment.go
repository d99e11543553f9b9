package payment

import (
	"donation_system/internal/domain" // Payment method names

	"github.com/google/uuid" // Transaction reference generation
)

// Result is the outcome a gateway reports for one payment attempt.
type Result struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"` // completed, failed or pending
	Message       string `json:"message"`
}

// Details carries the method-specific fields of a payment request.
// Only the fields relevant to the chosen method are read.
type Details struct {
	PhoneNumber string `json:"phone_number,omitempty"` // mobile_money
	CardNumber  string `json:"card_number,omitempty"`  // card
	CardExpiry  string `json:"card_expiry,omitempty"`  // card
	CardCVC     string `json:"card_cvc,omitempty"`     // card
}

// Processor attempts to settle a donation payment and reports the outcome.
// Implementations never touch application state; the caller decides what to
// persist.
type Processor interface {
	Process(amount int64, details Details, description string) Result
}

// Registry maps a payment method name to its Processor.
type Registry map[string]Processor

// Simulated returns the gateway registry used when no real payment provider
// is configured. Outcomes are deterministic so the same request always
// settles the same way.
func Simulated() Registry {
	return Registry{
		domain.MethodMobileMoney:  MobileMoney{},
		domain.MethodCard:         Card{},
		domain.MethodBankTransfer: BankTransfer{},
	}
}

// DeclineCardNumber is the simulator's well-known always-declined card.
const DeclineCardNumber = "4000000000000002"

// MobileMoney simulates a mobile money provider. Every charge is approved.
type MobileMoney struct{}

func (MobileMoney) Process(amount int64, details Details, description string) Result {
	return Result{
		Success:       true,
		TransactionID: "MM-" + uuid.NewString(),
		Status:        domain.DonationCompleted,
		Message:       "Mobile money payment completed",
	}
}

// Card simulates a card acquirer. DeclineCardNumber is rejected, everything
// else is approved.
type Card struct{}

func (Card) Process(amount int64, details Details, description string) Result {
	if details.CardNumber == DeclineCardNumber {
		return Result{
			Success:       false,
			TransactionID: "CARD-" + uuid.NewString(),
			Status:        domain.DonationFailed,
			Message:       "Card declined by issuer",
		}
	}
	return Result{
		Success:       true,
		TransactionID: "CARD-" + uuid.NewString(),
		Status:        domain.DonationCompleted,
		Message:       "Card payment completed",
	}
}

// BankTransfer accepts immediately with no external verification; the
// donation stays pending until an administrator settles it.
type BankTransfer struct{}

func (BankTransfer) Process(amount int64, details Details, description string) Result {
	return Result{
		Success:       true,
		TransactionID: "BANK-" + uuid.NewString(),
		Status:        domain.DonationPending,
		Message:       "Bank transfer recorded, awaiting settlement",
	}
}
