package api

import (
	"context"
	"net/http"
	"time"

	"donation_system/internal/ledger" // Fund-accounting core
	"donation_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// FundSummaryHandler reports the ledger-wide fund position: completed
// donations, live allocations and the non-negative available balance.
func FundSummaryHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached ledger.Summary
		found, err := utils.GetCache(ctx, rdb, fundSummaryCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"total_donated":   cached.TotalDonated,
				"total_allocated": cached.TotalAllocated,
				"available":       cached.Available,
				"cached":          true,
			})
			return
		}
		summary, err := svc.FundSummary()
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, fundSummaryCacheKey, summary, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{
			"total_donated":   summary.TotalDonated,
			"total_allocated": summary.TotalAllocated,
			"available":       summary.Available,
			"cached":          false,
		})
	}
}
