package controllers

import (
	"errors"
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePetInput struct {
	CustomerID uuid.UUID  `json:"customerId" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	Species    string     `json:"species"`
	Breed      string     `json:"breed"`
	Size       string     `json:"size" binding:"omitempty,oneof=small medium large xlarge"`
	Birthday   *time.Time `json:"birthday"`
	Notes      string     `json:"notes"`
}

type UpdatePetInput struct {
	Name     *string    `json:"name"`
	Species  *string    `json:"species"`
	Breed    *string    `json:"breed"`
	Size     *string    `json:"size" binding:"omitempty,oneof=small medium large xlarge"`
	Birthday *time.Time `json:"birthday"`
	Notes    *string    `json:"notes"`
	IsActive *bool      `json:"isActive"`
}

// CreatePet registers a pet under an existing customer
func CreatePet(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Owner must belong to the same business
	var customer models.Customer
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	pet := models.Pet{
		BusinessID: businessUUID,
		CustomerID: input.CustomerID,
		Name:       input.Name,
		Species:    input.Species,
		Breed:      input.Breed,
		Size:       input.Size,
		Birthday:   input.Birthday,
		Notes:      input.Notes,
		IsActive:   true,
	}
	if pet.Species == "" {
		pet.Species = "dog"
	}

	if err := config.DB.Create(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pet")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

// GetPets lists pets, optionally filtered by customer
func GetPets(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("business_id = ?", businessUUID)
	if customerID := c.Query("customer_id"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer_id format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}

	var pets []models.Pet
	if err := query.Order("name ASC").Find(&pets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	c.JSON(http.StatusOK, pets)
}

// UpdatePet updates an existing pet
func UpdatePet(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	petUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pet models.Pet
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, petUUID).
		First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Species != nil {
		pet.Species = *input.Species
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.Size != nil {
		pet.Size = *input.Size
	}
	if input.Birthday != nil {
		pet.Birthday = input.Birthday
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

// DeletePet soft-deletes a pet
func DeletePet(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	petUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, petUUID).
		Delete(&models.Pet{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete pet")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}
