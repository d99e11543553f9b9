package ledger

import (
	"testing"

	"donation_system/internal/domain"
	"donation_system/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDonationMinimum(t *testing.T) {
	db := newTestDB(t)
	gateways := approvingRegistry()
	svc := NewService(db, gateways, 0)
	donor := createAccount(t, db, "donor")

	// Below the 1000 floor: rejected before the gateway sees anything.
	_, err := svc.RecordDonation(donor.ID, 999, domain.PurposeHealth, domain.MethodBankTransfer, payment.Details{})
	var validation ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Minimum donation is 1000", validation.Reason)
	assert.Equal(t, 0, gateways[domain.MethodBankTransfer].(*stubGateway).calls)

	var count int64
	require.NoError(t, db.Model(&domain.Donation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Exactly the minimum via bank transfer lands as pending.
	donation, err := svc.RecordDonation(donor.ID, 1000, domain.PurposeHealth, domain.MethodBankTransfer, payment.Details{})
	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, donation.Status)
	assert.Equal(t, 1, gateways[domain.MethodBankTransfer].(*stubGateway).calls)
}

func TestRecordDonationValidation(t *testing.T) {
	db := newTestDB(t)
	gateways := approvingRegistry()
	svc := NewService(db, gateways, 0)
	donor := createAccount(t, db, "donor")

	var validation ValidationError

	_, err := svc.RecordDonation(donor.ID, 2000, "housing", domain.MethodCard, payment.Details{})
	require.ErrorAs(t, err, &validation)

	_, err = svc.RecordDonation(donor.ID, 2000, domain.PurposeHealth, "cheque", payment.Details{})
	require.ErrorAs(t, err, &validation)

	_, err = svc.RecordDonation(donor.ID, 2000, domain.PurposeHealth, domain.MethodMobileMoney, payment.Details{})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Mobile money payments require a phone number", validation.Reason)

	_, err = svc.RecordDonation(donor.ID, 2000, domain.PurposeHealth, domain.MethodCard, payment.Details{CardNumber: "4242424242424242"})
	require.ErrorAs(t, err, &validation)

	var notFound NotFoundError
	_, err = svc.RecordDonation(donor.ID+999, 2000, domain.PurposeHealth, domain.MethodBankTransfer, payment.Details{})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "account", notFound.Kind)

	// Nothing reached a gateway and nothing was written.
	for method, gateway := range gateways {
		assert.Equal(t, 0, gateway.(*stubGateway).calls, method)
	}
	var count int64
	require.NoError(t, db.Model(&domain.Donation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRecordDonationDeclined(t *testing.T) {
	db := newTestDB(t)
	declining := &stubGateway{result: payment.Result{
		Success:       false,
		TransactionID: "CARD-DECLINED",
		Status:        domain.DonationFailed,
		Message:       "Card declined by issuer",
	}}
	svc := NewService(db, payment.Registry{domain.MethodCard: declining}, 0)
	donor := createAccount(t, db, "donor")

	donation, err := svc.RecordDonation(donor.ID, 2500, domain.PurposeEducation, domain.MethodCard, payment.Details{
		CardNumber: payment.DeclineCardNumber, CardExpiry: "12/30", CardCVC: "123",
	})
	var declined PaymentDeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "Card declined by issuer", declined.Message)

	// The failed attempt is on record for audit.
	require.NotNil(t, donation)
	assert.Equal(t, domain.DonationFailed, donation.Status)
	var stored domain.Donation
	require.NoError(t, db.First(&stored, donation.ID).Error)
	assert.Equal(t, domain.DonationFailed, stored.Status)
	assert.Equal(t, "CARD-DECLINED", stored.TransactionID)

	// Failed money never enters the pool.
	sum, err := svc.FundSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum.TotalDonated)
}

func TestRecordDonationCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, approvingRegistry(), 0)
	donor := createAccount(t, db, "donor")

	donation, err := svc.RecordDonation(donor.ID, 3000, domain.PurposeSkills, domain.MethodMobileMoney, payment.Details{PhoneNumber: "0772000001"})
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, donation.Status)
	assert.Equal(t, "MM-TEST", donation.TransactionID)

	sum, err := svc.FundSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(3000), sum.TotalDonated)
	assert.Equal(t, int64(3000), sum.Available)
}

func TestSettleDonation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, approvingRegistry(), 0)
	donor := createAccount(t, db, "donor")

	donation, err := svc.RecordDonation(donor.ID, 2000, domain.PurposeGeneral, domain.MethodBankTransfer, payment.Details{})
	require.NoError(t, err)
	require.Equal(t, domain.DonationPending, donation.Status)

	// Pending money is not yet in the pool.
	available, err := svc.AvailableBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(0), available)

	settled, err := svc.SettleDonation(donation.ID, domain.DonationCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, settled.Status)

	available, err = svc.AvailableBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(2000), available)

	// Completed donations are immutable.
	_, err = svc.SettleDonation(donation.ID, domain.DonationFailed)
	var validation ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.SettleDonation(donation.ID+999, domain.DonationCompleted)
	var notFound NotFoundError
	require.ErrorAs(t, err, &notFound)

	_, err = svc.SettleDonation(donation.ID, "pending")
	require.ErrorAs(t, err, &validation)
}
