package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"donation_system/internal/domain" // Importing domain models
	"donation_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// BeneficiaryRequest is the admin payload for registering a beneficiary.
type BeneficiaryRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
	SupportType string `json:"support_type" binding:"required"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// CreateBeneficiaryHandler registers a beneficiary. Support received starts
// at zero and only the allocation engine moves it.
func CreateBeneficiaryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BeneficiaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !domain.ValidSupportType(req.SupportType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid support type"})
			return
		}
		status := req.Status
		if status == "" {
			status = domain.BeneficiaryPending
		}
		if status != domain.BeneficiaryPending && status != domain.BeneficiaryActive && status != domain.BeneficiaryInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		beneficiary := domain.Beneficiary{
			FullName:    req.FullName,
			Age:         req.Age,
			Gender:      req.Gender,
			Location:    req.Location,
			SupportType: req.SupportType,
			Status:      status,
			Notes:       req.Notes,
		}
		if err := db.Create(&beneficiary).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"full_name": req.FullName,
				"error":     err.Error(),
			}).Error("Failed to create beneficiary")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create beneficiary"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"beneficiary_id": beneficiary.ID,
			"support_type":   beneficiary.SupportType,
			"status":         beneficiary.Status,
		}).Info("Beneficiary created")
		// Drop cached listing pages
		ctx := context.Background()
		for i := 1; i <= 5; i++ {
			_ = utils.DeleteCache(ctx, rdb, "beneficiaries:page:"+strconv.Itoa(i)+":size:20")
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Beneficiary created", "beneficiary": beneficiary})
	}
}

// ListBeneficiariesHandler returns beneficiaries, paginated and cached.
func ListBeneficiariesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
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
		cacheKey := "beneficiaries:page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		ctx := context.Background()
		var cached struct {
			Beneficiaries []domain.Beneficiary `json:"beneficiaries"`
			Page          int                  `json:"page"`
			PageSize      int                  `json:"page_size"`
			Total         int64                `json:"total"`
			TotalPages    int                  `json:"total_pages"`
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"beneficiaries": cached.Beneficiaries,
				"page":          cached.Page,
				"page_size":     cached.PageSize,
				"total":         cached.Total,
				"total_pages":   cached.TotalPages,
				"cached":        true,
			})
			return
		}
		var total int64
		if err := db.Model(&domain.Beneficiary{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count beneficiaries"})
			return
		}
		var beneficiaries []domain.Beneficiary
		// Active beneficiaries first, newest first within each group
		if err := db.Order("CASE WHEN status = 'active' THEN 0 ELSE 1 END").
			Order("created_at desc").
			Offset(offset).Limit(pageSize).Find(&beneficiaries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch beneficiaries"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		resp := gin.H{
			"beneficiaries": beneficiaries,
			"page":          page,
			"page_size":     pageSize,
			"total":         total,
			"total_pages":   totalPages,
			"cached":        false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}
