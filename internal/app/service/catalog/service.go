package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Divy97/rajawadu/internal/models"
)

var ErrProductNotFound = errors.New("catalog: product not found")

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *Service) FeaturedProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := s.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// GetProductsByIDs loads products for order validation; callers must check
// every requested id came back.
func (s *Service) GetProductsByIDs(ctx context.Context, ids []string) ([]*models.Product, error) {
	var products []*models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// DecrementInventory atomically reduces stock for a sold product. The guard
// keeps inventory from going negative when deliveries race; a short row is
// not an error here, it is reconciled by ops tooling later.
func (s *Service) DecrementInventory(ctx context.Context, productID string, quantity int) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND inventory >= ?", productID, quantity).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement inventory for product %s: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		s.log.Warnw("inventory_decrement_skipped", "product_id", productID, "quantity", quantity)
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
