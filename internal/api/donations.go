package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"donation_system/internal/domain"  // Importing domain models
	"donation_system/internal/ledger"  // Fund-accounting core
	"donation_system/internal/payment" // Payment detail payloads
	"donation_system/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// DonationRequest is the contribution payload.
type DonationRequest struct {
	Amount         int64           `json:"amount" binding:"required,gt=0"`
	Purpose        string          `json:"purpose" binding:"required"`
	PaymentMethod  string          `json:"payment_method" binding:"required"`
	PaymentDetails payment.Details `json:"payment_details"`
}

// donationBody shapes a donation for API responses.
func donationBody(d *domain.Donation) gin.H {
	return gin.H{
		"id":             d.ID,
		"amount":         d.Amount,
		"purpose":        d.Purpose,
		"transaction_id": d.TransactionID,
		"status":         d.Status,
	}
}

// CreateDonationHandler records a contribution through the payment gateway.
// The success flag mirrors the payment outcome; a declined payment is still
// recorded with status failed.
func CreateDonationHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := c.Get("accountID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req DonationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		donation, err := svc.RecordDonation(accountID.(uint), req.Amount, req.Purpose, req.PaymentMethod, req.PaymentDetails)
		if err != nil {
			var declined ledger.PaymentDeclinedError
			if errors.As(err, &declined) {
				// The failed attempt was written for audit; only the
				// payment itself was refused.
				invalidateLedgerCaches(context.Background(), rdb, accountID.(uint))
				c.JSON(http.StatusPaymentRequired, gin.H{
					"success":  false,
					"message":  declined.Message,
					"donation": donationBody(donation),
				})
				return
			}
			respondLedgerError(c, err)
			return
		}
		invalidateLedgerCaches(context.Background(), rdb, accountID.(uint))
		message := "Donation completed successfully"
		if donation.Status == domain.DonationPending {
			message = "Donation recorded, awaiting settlement"
		}
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  message,
			"donation": donationBody(donation),
		})
	}
}

// ListMyDonationsHandler returns the authenticated account's donation
// history, newest first, paginated and cached.
func ListMyDonationsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := c.Get("accountID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page := 1
		pageSize := 20
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v
			}
		}
		offset := (page - 1) * pageSize
		cacheKey := donationPagesPrefix(accountID.(uint)) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		ctx := context.Background()
		var cached struct {
			Donations  []domain.Donation `json:"donations"`
			Page       int               `json:"page"`
			PageSize   int               `json:"page_size"`
			Total      int64             `json:"total"`
			TotalPages int               `json:"total_pages"`
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"donations":   cached.Donations,
				"page":        cached.Page,
				"page_size":   cached.PageSize,
				"total":       cached.Total,
				"total_pages": cached.TotalPages,
				"cached":      true,
			})
			return
		}
		var total int64
		if err := db.Model(&domain.Donation{}).
			Where("account_id = ?", accountID).
			Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count donations"})
			return
		}
		var donations []domain.Donation
		if err := db.Where("account_id = ?", accountID).
			Order("created_at desc").
			Offset(offset).
			Limit(pageSize).
			Find(&donations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donations"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		resp := gin.H{
			"donations":   donations,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
			"cached":      false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}
