package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stockroom/inventory-api/internal/models"
)

var (
	ErrUserAlreadyExist  = errors.New("user already exist")
	ErrSKUAlreadyExist   = errors.New("sku already exist")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Product{})
}
