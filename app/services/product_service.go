package services

import (
	"BakeryApp/app/models"

	"gorm.io/gorm"
)

// ProductService handles finished-product management
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a new product service
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// GetAllProducts retrieves all products owned by the user
func (s *ProductService) GetAllProducts(userID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&products).Error
	return products, err
}

// GetProduct retrieves a single product by ID
func (s *ProductService) GetProduct(userID, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("user_id = ?", userID).First(&product, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &InvalidReferenceError{Entity: "product", ID: id}
	}
	return &product, err
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(userID uint, product *models.Product) error {
	if product.Name == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if product.SalePrice < 0 {
		return &ValidationError{Field: "sale_price", Message: "must not be negative"}
	}
	product.UserID = userID
	return s.db.Create(product).Error
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(userID uint, product *models.Product) error {
	if _, err := s.GetProduct(userID, product.ID); err != nil {
		return err
	}
	product.UserID = userID
	return s.db.Save(product).Error
}

// DeleteProduct deletes a product when no production references remain
func (s *ProductService) DeleteProduct(userID, id uint) error {
	if _, err := s.GetProduct(userID, id); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Production{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ValidationError{Field: "product", Message: "product has production history"}
	}

	return s.db.Delete(&models.Product{}, id).Error
}
