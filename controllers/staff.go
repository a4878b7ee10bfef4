// controllers/staff.go
package controllers

import (
	"errors"
	"net/http"

	"petclinic-backend/config"
	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateStaffInput defines the expected JSON structure for updating a staff
// member. Staff creation happens out of band; this surface only maintains
// existing records.
type UpdateStaffInput struct {
	Name        *string       `json:"name"`
	Phone       *string       `json:"phone"`
	Role        *string       `json:"role" binding:"omitempty,oneof=veterinarian care_staff manager receptionist"`
	RoleDetails *models.JSONB `json:"roleDetails"`
	IsActive    *bool         `json:"isActive"`
}

// GetStaffList retrieves all staff members
func GetStaffList(c *gin.Context) {
	query := config.DB.Order("name")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = true")
	}

	var staff []models.Staff
	if err := query.Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// GetStaff retrieves a specific staff member by ID
func GetStaff(c *gin.Context) {
	staffID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, staff)
}

// UpdateStaff updates an existing staff member
func UpdateStaff(c *gin.Context) {
	staffID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.RoleDetails != nil {
		staff.RoleDetails = *input.RoleDetails
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}
