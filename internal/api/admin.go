package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"donation_system/internal/domain" // Importing domain models
	"donation_system/internal/ledger" // Fund-accounting core
	"donation_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// AccountAdminResponse represents the account data returned to admin
type AccountAdminResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ListAccountsHandler returns all accounts, paginated and cached.
func ListAccountsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		cacheKey := "admin:accounts:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Accounts   []AccountAdminResponse `json:"accounts"`
			Page       int                    `json:"page"`
			PageSize   int                    `json:"page_size"`
			Total      int64                  `json:"total"`
			TotalPages int                    `json:"total_pages"`
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"accounts":    cached.Accounts,
				"page":        cached.Page,
				"page_size":   cached.PageSize,
				"total":       cached.Total,
				"total_pages": cached.TotalPages,
				"cached":      true,
			})
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
		var total int64
		if err := db.Model(&domain.Account{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count accounts"})
			return
		}
		var accounts []domain.Account
		if err := db.Offset(offset).Limit(pageSize).Find(&accounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		resp := make([]AccountAdminResponse, len(accounts))
		for i, a := range accounts {
			resp[i] = AccountAdminResponse{
				ID:       a.ID,
				Username: a.Username,
				FullName: a.FullName,
				Email:    a.Email,
				Role:     a.Role,
			}
		}
		respData := gin.H{
			"accounts":    resp,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
			"cached":      false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData)
	}
}

// ListDonationsHandler returns all donations, with optional filtering by
// account, status, purpose or date range.
func ListDonationsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		// Build cache key from all query params
		var keyParts []string
		for _, k := range []string{"account_id", "status", "purpose", "from", "to", "page", "page_size"} {
			keyParts = append(keyParts, k+"="+c.DefaultQuery(k, ""))
		}
		cacheKey := "admin:donations:" + strings.Join(keyParts, ":")
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
		query := db.Model(&domain.Donation{})
		if accountID := c.Query("account_id"); accountID != "" {
			query = query.Where("account_id = ?", accountID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if purpose := c.Query("purpose"); purpose != "" {
			query = query.Where("purpose = ?", purpose)
		}
		if from := c.Query("from"); from != "" {
			query = query.Where("created_at >= ?", from)
		}
		if to := c.Query("to"); to != "" {
			query = query.Where("created_at <= ?", to)
		}
		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count donations"})
			return
		}
		var donations []domain.Donation
		if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&donations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donations"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		respData := gin.H{
			"donations":   donations,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
			"cached":      false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData)
	}
}

// SettleRequest corrects a pending donation's status.
type SettleRequest struct {
	Status string `json:"status" binding:"required"`
}

// SettleDonationHandler confirms or abandons a pending donation, typically a
// bank transfer whose settlement arrived out of band.
func SettleDonationHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid donation id"})
			return
		}
		var req SettleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		donation, err := svc.SettleDonation(uint(id), req.Status)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		invalidateLedgerCaches(context.Background(), rdb, donation.AccountID)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Donation settled",
			"donation": donationBody(donation),
		})
	}
}
