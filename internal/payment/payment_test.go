package payment

import (
	"testing"

	"donation_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedRegistryCoversAllMethods(t *testing.T) {
	registry := Simulated()
	for _, method := range []string{domain.MethodMobileMoney, domain.MethodCard, domain.MethodBankTransfer} {
		_, ok := registry[method]
		assert.True(t, ok, method)
	}
}

func TestMobileMoneyApproves(t *testing.T) {
	res := MobileMoney{}.Process(5000, Details{PhoneNumber: "0772000001"}, "test donation")
	assert.True(t, res.Success)
	assert.Equal(t, domain.DonationCompleted, res.Status)
	assert.Contains(t, res.TransactionID, "MM-")
}

func TestCardApprovesAndDeclines(t *testing.T) {
	approved := Card{}.Process(5000, Details{CardNumber: "4242424242424242", CardExpiry: "12/30", CardCVC: "123"}, "test donation")
	require.True(t, approved.Success)
	assert.Equal(t, domain.DonationCompleted, approved.Status)

	declined := Card{}.Process(5000, Details{CardNumber: DeclineCardNumber, CardExpiry: "12/30", CardCVC: "123"}, "test donation")
	require.False(t, declined.Success)
	assert.Equal(t, domain.DonationFailed, declined.Status)
	assert.NotEmpty(t, declined.TransactionID)
	assert.NotEmpty(t, declined.Message)
}

func TestBankTransferStaysPending(t *testing.T) {
	res := BankTransfer{}.Process(5000, Details{}, "test donation")
	assert.True(t, res.Success)
	assert.Equal(t, domain.DonationPending, res.Status)
	assert.Contains(t, res.TransactionID, "BANK-")
}

func TestTransactionIDsAreUnique(t *testing.T) {
	a := BankTransfer{}.Process(1000, Details{}, "first")
	b := BankTransfer{}.Process(1000, Details{}, "second")
	assert.NotEqual(t, a.TransactionID, b.TransactionID)
}
