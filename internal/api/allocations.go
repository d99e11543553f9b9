package api

import (
	"context"
	"net/http"

	"donation_system/internal/domain" // Importing domain models
	"donation_system/internal/ledger" // Fund-accounting core

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// AllocationRequest commits ledger funds to a beneficiary. donation_id is
// optional: when absent the allocation draws from the general pool.
type AllocationRequest struct {
	DonationID    *uint  `json:"donation_id"`
	BeneficiaryID uint   `json:"beneficiary_id" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	SupportType   string `json:"support_type" binding:"required"`
}

// CreateAllocationHandler runs an allocation through the ledger core. The
// balance check and the writes are one atomic unit inside the core; an
// insufficient balance comes back as a 400 reporting the available figure.
func CreateAllocationHandler(db *gorm.DB, svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := c.Get("accountID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AllocationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		allocation, err := svc.Allocate(req.DonationID, req.BeneficiaryID, req.Amount, req.SupportType, accountID.(uint))
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		ctx := context.Background()
		invalidateLedgerCaches(ctx, rdb, 0)
		// A linked allocation changes the funding donor's impact summary.
		if req.DonationID != nil {
			var donation domain.Donation
			if err := db.First(&donation, *req.DonationID).Error; err == nil {
				invalidateLedgerCaches(ctx, rdb, donation.AccountID)
			}
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Allocation recorded",
			"allocation": gin.H{
				"id":             allocation.ID,
				"donation_id":    allocation.DonationID,
				"beneficiary_id": allocation.BeneficiaryID,
				"amount":         allocation.Amount,
				"support_type":   allocation.SupportType,
				"status":         allocation.Status,
			},
		})
	}
}
