// controllers/owner.go
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

// CreateOwnerInput defines the expected JSON structure for creating an owner
type CreateOwnerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateOwnerInput defines the expected JSON structure for updating an owner
type UpdateOwnerInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// CreateOwner registers a pet owner at the front desk (no login account)
func CreateOwner(c *gin.Context) {
	var input CreateOwnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists
	var existing models.Owner
	if err := config.DB.Where("phone = ?", input.Phone).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Owner with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	owner := models.Owner{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		Notes:    input.Notes,
		IsActive: true,
	}

	if err := config.DB.Create(&owner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create owner")
		return
	}

	c.JSON(http.StatusCreated, owner)
}

// GetOwners retrieves all pet owners
func GetOwners(c *gin.Context) {
	var owners []models.Owner
	if err := config.DB.Preload("Pets").Find(&owners).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve owners")
		return
	}

	c.JSON(http.StatusOK, owners)
}

// GetOwner retrieves a specific owner by ID
func GetOwner(c *gin.Context) {
	ownerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var owner models.Owner
	if err := config.DB.Preload("Pets").First(&owner, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Owner not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, owner)
}

// UpdateOwner updates an existing owner
func UpdateOwner(c *gin.Context) {
	ownerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateOwnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var owner models.Owner
	if err := config.DB.First(&owner, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Owner not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		owner.Phone = *input.Phone
	}
	if input.Name != nil {
		owner.Name = *input.Name
	}
	if input.Email != nil {
		owner.Email = *input.Email
	}
	if input.Address != nil {
		owner.Address = *input.Address
	}
	if input.Notes != nil {
		owner.Notes = *input.Notes
	}
	if input.IsActive != nil {
		owner.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&owner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update owner")
		return
	}

	c.JSON(http.StatusOK, owner)
}
