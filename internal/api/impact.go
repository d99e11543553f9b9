package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"donation_system/internal/domain" // Importing domain models
	"donation_system/internal/ledger" // Fund-accounting core
	"donation_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// ImpactHandler reports a donor's giving summary. Accounts can read their
// own; admins can read anyone's.
func ImpactHandler(db *gorm.DB, svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID, exists := c.Get("accountID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("account_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
			return
		}
		accountID := uint(id)
		if accountID != requesterID.(uint) {
			var requester domain.Account
			if err := db.First(&requester, requesterID).Error; err != nil || requester.Role != "admin" {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cannot view another account's impact"})
				return
			}
		}
		ctx := context.Background()
		cacheKey := impactCacheKey(accountID)
		var cached ledger.Impact
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"total_donated":        cached.TotalDonated,
				"donation_count":       cached.DonationCount,
				"beneficiaries_helped": cached.BeneficiariesHelped,
				"cached":               true,
			})
			return
		}
		impact, err := svc.ImpactFor(accountID)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, impact, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{
			"total_donated":        impact.TotalDonated,
			"donation_count":       impact.DonationCount,
			"beneficiaries_helped": impact.BeneficiariesHelped,
			"cached":               false,
		})
	}
}
