// controllers/invoice.go
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

// UpdateInvoiceInput covers the payment bookkeeping fields. Invoice creation
// has no endpoint: invoices are generated when an appointment completes.
type UpdateInvoiceInput struct {
	PaymentStatus *string `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid partial"`
	Notes         *string `json:"notes"`
}

// GetInvoices lists invoices. Owner principals see only their own.
func GetInvoices(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	query := config.DB.Preload("Items").Order("invoice_date desc")
	if caller.Role == models.RoleOwner {
		if caller.OwnerID == nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Owner ID not found in context")
			return
		}
		query = query.Where("owner_id = ?", *caller.OwnerID)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	caller, ok := principalFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").First(&invoice, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if caller.Role == models.RoleOwner && (caller.OwnerID == nil || invoice.OwnerID != *caller.OwnerID) {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice records payment status changes
func UpdateInvoice(c *gin.Context) {
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.PaymentStatus != nil {
		invoice.PaymentStatus = *input.PaymentStatus
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}
