// controllers/pet.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"petclinic-backend/config"
	"petclinic-backend/models"
	"petclinic-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePetInput defines the expected JSON structure for registering a pet.
// OwnerID is ignored for owner principals, who always register their own pets.
type CreatePetInput struct {
	OwnerID     *uuid.UUID `json:"ownerId"`
	Name        string     `json:"name" binding:"required"`
	Species     string     `json:"species" binding:"required"`
	Breed       string     `json:"breed"`
	BirthDate   *time.Time `json:"birthDate"`
	WeightKg    *float64   `json:"weightKg"`
	MicrochipID string     `json:"microchipId"`
	Notes       string     `json:"notes"`
}

// UpdatePetInput defines the expected JSON structure for updating a pet
type UpdatePetInput struct {
	Name        *string    `json:"name"`
	Breed       *string    `json:"breed"`
	BirthDate   *time.Time `json:"birthDate"`
	WeightKg    *float64   `json:"weightKg"`
	MicrochipID *string    `json:"microchipId"`
	Notes       *string    `json:"notes"`
	IsActive    *bool      `json:"isActive"`
}

// CreatePet registers a pet under an owner
func CreatePet(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var ownerID uuid.UUID
	if caller.Role == models.RoleOwner {
		if caller.OwnerID == nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Owner ID not found in context")
			return
		}
		ownerID = *caller.OwnerID
	} else {
		if input.OwnerID == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "ownerId is required")
			return
		}
		ownerID = *input.OwnerID
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

	if input.MicrochipID != "" && !utils.ValidateMicrochip(input.MicrochipID) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid microchip ID format")
		return
	}

	pet := models.Pet{
		OwnerID:     ownerID,
		Name:        input.Name,
		Species:     input.Species,
		Breed:       input.Breed,
		BirthDate:   input.BirthDate,
		WeightKg:    input.WeightKg,
		MicrochipID: input.MicrochipID,
		Notes:       input.Notes,
		IsActive:    true,
	}

	if err := config.DB.Create(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pet")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

// GetPets lists pets. Owner principals see only their own.
func GetPets(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	query := config.DB.Order("name")
	if caller.Role == models.RoleOwner {
		if caller.OwnerID == nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Owner ID not found in context")
			return
		}
		query = query.Where("owner_id = ?", *caller.OwnerID)
	} else if ownerID := c.Query("ownerId"); ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}

	var pets []models.Pet
	if err := query.Find(&pets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	c.JSON(http.StatusOK, pets)
}

// GetPet retrieves a specific pet by ID. Foreign pets stay invisible to
// owner principals.
func GetPet(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	petID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var pet models.Pet
	if err := config.DB.First(&pet, "id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if caller.Role == models.RoleOwner && (caller.OwnerID == nil || pet.OwnerID != *caller.OwnerID) {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	c.JSON(http.StatusOK, pet)
}

// UpdatePet updates an existing pet
func UpdatePet(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	petID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pet models.Pet
	if err := config.DB.First(&pet, "id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if caller.Role == models.RoleOwner && (caller.OwnerID == nil || pet.OwnerID != *caller.OwnerID) {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	if input.MicrochipID != nil {
		if *input.MicrochipID != "" && !utils.ValidateMicrochip(*input.MicrochipID) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid microchip ID format")
			return
		}
		pet.MicrochipID = *input.MicrochipID
	}
	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.BirthDate != nil {
		pet.BirthDate = input.BirthDate
	}
	if input.WeightKg != nil {
		pet.WeightKg = input.WeightKg
	}
	if input.Notes != nil {
		pet.Notes = *input.Notes
	}
	if input.IsActive != nil {
		pet.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pet")
		return
	}

	c.JSON(http.StatusOK, pet)
}
