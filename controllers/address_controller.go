package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/middleware"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/repository"
)

var (
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	nonDigits = regexp.MustCompile(`\D`)
)

type AddressController struct {
	addressRepo repository.AddressRepository
}

func NewAddressController(addressRepo repository.AddressRepository) *AddressController {
	return &AddressController{addressRepo: addressRepo}
}

type addressRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Country     string `json:"country" binding:"required"`
	Pincode     string `json:"pincode" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// AddAddress validates and stores a new address for the caller.
func (ac *AddressController) AddAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("All fields are required"))
		return
	}

	if !phoneRe.MatchString(nonDigits.ReplaceAllString(req.PhoneNumber, "")) {
		respondError(c, apperrors.Validation("Invalid phone number"))
		return
	}
	if !pincodeRe.MatchString(strings.TrimSpace(req.Pincode)) {
		respondError(c, apperrors.Validation("Invalid pincode (must be 6 digits)"))
		return
	}

	address := &models.Address{
		UserID:      middleware.Username(c),
		FullName:    req.FullName,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Pincode:     strings.TrimSpace(req.Pincode),
		PhoneNumber: req.PhoneNumber,
	}
	if err := ac.addressRepo.Create(c, address); err != nil {
		respondError(c, apperrors.Internal("Failed to add address", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Address added successfully", "address": address})
}

// GetLatestAddress returns the caller's most recently created address.
func (ac *AddressController) GetLatestAddress(c *gin.Context) {
	address, err := ac.addressRepo.FindLatestByUser(c, middleware.Username(c))
	if err != nil {
		respondError(c, apperrors.Internal("Failed to retrieve address", err))
		return
	}
	if address == nil {
		respondError(c, apperrors.NotFound("No address found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address retrieved successfully", "address": address})
}

// GetAllAddresses lists the caller's address book newest first.
func (ac *AddressController) GetAllAddresses(c *gin.Context) {
	addresses, err := ac.addressRepo.FindByUser(c, middleware.Username(c))
	if err != nil {
		respondError(c, apperrors.Internal("Failed to retrieve addresses", err))
		return
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Addresses retrieved successfully", "addresses": addresses})
}

// DeleteAddress removes one of the caller's addresses; the filter is
// owner-scoped so ids belonging to other users read as absent.
func (ac *AddressController) DeleteAddress(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("Invalid address id"))
		return
	}

	address, err := ac.addressRepo.DeleteByIDAndUser(c, id, middleware.Username(c))
	if err != nil {
		respondError(c, apperrors.Internal("Failed to delete address", err))
		return
	}
	if address == nil {
		respondError(c, apperrors.NotFound("No address found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully", "address": address})
}
