package controllers

import (
	"errors"
	"net/http"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePhotoInput struct {
	URL           string     `json:"url" binding:"required,url"`
	PetID         *uuid.UUID `json:"petId"`
	AppointmentID *uuid.UUID `json:"appointmentId"`
	Caption       string     `json:"caption"`
	IsPublic      bool       `json:"isPublic"`
}

type UpdatePhotoInput struct {
	Caption  *string `json:"caption"`
	IsPublic *bool   `json:"isPublic"`
}

// CreatePhoto records an uploaded gallery photo
func CreatePhoto(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	photo := models.GalleryPhoto{
		BusinessID:    businessUUID,
		PetID:         input.PetID,
		AppointmentID: input.AppointmentID,
		URL:           input.URL,
		Caption:       input.Caption,
		IsPublic:      input.IsPublic,
	}

	if err := config.DB.Create(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save photo")
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// GetPhotos lists gallery photos, optionally filtered by pet
func GetPhotos(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("business_id = ?", businessUUID)
	if petID := c.Query("pet_id"); petID != "" {
		petUUID, err := uuid.Parse(petID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet_id format")
			return
		}
		query = query.Where("pet_id = ?", petUUID)
	}
	if c.Query("public") == "true" {
		query = query.Where("is_public = true")
	}

	var photos []models.GalleryPhoto
	if err := query.Order("created_at DESC").Find(&photos).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// UpdatePhoto updates a photo's caption or visibility
func UpdatePhoto(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	photoUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdatePhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var photo models.GalleryPhoto
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, photoUUID).
		First(&photo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Photo not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Caption != nil {
		photo.Caption = *input.Caption
	}
	if input.IsPublic != nil {
		photo.IsPublic = *input.IsPublic
	}

	if err := config.DB.Save(&photo).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update photo")
		return
	}

	c.JSON(http.StatusOK, photo)
}

// DeletePhoto removes a photo record
func DeletePhoto(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	photoUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, photoUUID).
		Delete(&models.GalleryPhoto{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete photo")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Photo not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}
