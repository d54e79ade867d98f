package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/repository"
)

type ProductController struct {
	productRepo repository.ProductRepository
}

func NewProductController(productRepo repository.ProductRepository) *ProductController {
	return &ProductController{productRepo: productRepo}
}

type productRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"` // major units
	Category    string  `json:"category"`
	Qty         int     `json:"qty"`
	ImgSrc      string  `json:"imgSrc"`
}

// CreateProduct is admin-only (enforced in routing).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("title and price are required"))
		return
	}

	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       models.MinorUnits(req.Price),
		Category:    req.Category,
		Qty:         req.Qty,
		ImgSrc:      req.ImgSrc,
	}
	if err := pc.productRepo.Create(c, product); err != nil {
		respondError(c, apperrors.Internal("Failed to add product", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": product})
}

// GetProducts lists the catalog newest first. Public.
func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.productRepo.FindAll(c)
	if err != nil {
		respondError(c, apperrors.Internal("Failed to fetch products", err))
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"message": "All products", "products": products})
}

// GetProductByID fetches one product. Public.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("Invalid product id"))
		return
	}

	product, err := pc.productRepo.FindByID(c, id)
	if err != nil {
		respondError(c, apperrors.Internal("Failed to fetch product", err))
		return
	}
	if product == nil {
		respondError(c, apperrors.NotFound("Product not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Specific product", "product": product})
}

// UpdateProduct patches the given fields. Admin-only.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("Invalid product id"))
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("title and price are required"))
		return
	}

	updates := bson.M{
		"title":       req.Title,
		"description": req.Description,
		"price":       models.MinorUnits(req.Price),
		"category":    req.Category,
		"qty":         req.Qty,
		"imgSrc":      req.ImgSrc,
	}
	product, err := pc.productRepo.UpdateByID(c, id, updates)
	if err != nil {
		respondError(c, apperrors.Internal("Failed to update product", err))
		return
	}
	if product == nil {
		respondError(c, apperrors.NotFound("Product not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product has been updated", "product": product})
}

// DeleteProduct removes a product from the catalog. Admin-only.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("Invalid product id"))
		return
	}

	product, err := pc.productRepo.DeleteByID(c, id)
	if err != nil {
		respondError(c, apperrors.Internal("Failed to delete product", err))
		return
	}
	if product == nil {
		respondError(c, apperrors.NotFound("Product not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product has been deleted", "product": product})
}
