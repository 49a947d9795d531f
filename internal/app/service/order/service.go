package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Divy97/rajawadu/internal/app/service/catalog"
	"github.com/Divy97/rajawadu/internal/models"
	"github.com/Divy97/rajawadu/pkg/logctx"
	"github.com/Divy97/rajawadu/pkg/tool"
	"github.com/Divy97/rajawadu/pkg/types"
)

var (
	ErrOrderNotFound = errors.New("order: not found")
	ErrValidation    = errors.New("order: validation failed")
	// ErrNotPayable means the order is not in a state where payment can be
	// initiated (already processing or terminal).
	ErrNotPayable = errors.New("order: payment not in pending status")
)

// priceTolerance absorbs float rounding when comparing the client-supplied
// unit price against the catalog price.
const priceTolerance = 0.01

type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
	log     *zap.SugaredLogger
}

func NewService(db *gorm.DB, cat *catalog.Service, log *zap.SugaredLogger) *Service {
	return &Service{db: db, catalog: cat, log: log}
}

type CreateOrderItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"min=0"`
}

type CreateOrderRequest struct {
	GuestUserID     string            `json:"guest_user_id" binding:"required"`
	Items           []CreateOrderItem `json:"items" binding:"required,min=1"`
	CustomerName    string            `json:"customer_name" binding:"required"`
	CustomerEmail   string            `json:"customer_email" binding:"required"`
	CustomerPhone   string            `json:"customer_phone" binding:"required"`
	ShippingAddress types.Address     `json:"shipping_address" binding:"required"`
	BillingAddress  types.Address     `json:"billing_address" binding:"required"`
	ShippingCost    float64           `json:"shipping_cost" binding:"min=0"`
	TaxAmount       float64           `json:"tax_amount" binding:"min=0"`
	DiscountAmount  float64           `json:"discount_amount" binding:"min=0"`
	OrderNotes      string            `json:"order_notes"`
}

// CreateOrder validates products, stock and prices, then writes the order
// and its items. A failed item insert compensates by deleting the order so
// no headless orders are left behind. Stock is not reserved here; the
// reconciler decrements inventory when payment completes.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	productIDs := lo.Map(req.Items, func(it CreateOrderItem, _ int) string { return it.ProductID })
	products, err := s.catalog.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(lo.Uniq(productIDs)) {
		return nil, fmt.Errorf("%w: one or more products not found", ErrValidation)
	}
	productMap := lo.KeyBy(products, func(p *models.Product) string { return p.ID })

	var subtotal float64
	for _, item := range req.Items {
		p := productMap[item.ProductID]
		if p.Inventory < item.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s: available %d, requested %d",
				ErrValidation, p.Name, p.Inventory, item.Quantity)
		}
		diff := p.Price - item.Price
		if diff < 0 {
			diff = -diff
		}
		if diff > priceTolerance {
			return nil, fmt.Errorf("%w: price mismatch for %s: current %.2f, provided %.2f",
				ErrValidation, p.Name, p.Price, item.Price)
		}
		subtotal += item.Price * float64(item.Quantity)
	}

	total := subtotal + req.ShippingCost + req.TaxAmount - req.DiscountAmount

	order := &models.Order{
		ID:              tool.GenerateUUIDV7(),
		GuestUserID:     lo.ToPtr(req.GuestUserID),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: datatypes.NewJSONType(lo.ToPtr(req.ShippingAddress)),
		BillingAddress:  datatypes.NewJSONType(lo.ToPtr(req.BillingAddress)),
		Subtotal:        subtotal,
		ShippingCost:    req.ShippingCost,
		TaxAmount:       req.TaxAmount,
		DiscountAmount:  req.DiscountAmount,
		Total:           total,
		OrderStatus:     types.OrderStatusPending,
		PaymentStatus:   types.PaymentStatusPending,
	}
	if req.OrderNotes != "" {
		order.OrderNotes = lo.ToPtr(req.OrderNotes)
	}

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := lo.Map(req.Items, func(it CreateOrderItem, _ int) *models.OrderItem {
		return &models.OrderItem{
			ID:        tool.GenerateUUIDV7(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Price * float64(it.Quantity),
		}
	})
	if err := s.db.WithContext(ctx).Create(items).Error; err != nil {
		// compensate: no order row without its items
		if delErr := s.db.WithContext(ctx).Delete(order).Error; delErr != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to roll back order %s: %v", order.ID, delErr)
		}
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}
	order.Items = items

	// stock is decremented once, by the reconciler, when payment completes
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (s *Service) GetOrderByTxnID(ctx context.Context, txnid string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("payu_txnid = ?", txnid).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by txnid: %w", err)
	}
	return &order, nil
}

// MarkProcessing attaches a freshly generated gateway transaction id to a
// pending order and moves payment_status to processing. The conditional
// update keeps a second concurrent initiation from clobbering an in-flight
// one.
func (s *Service) MarkProcessing(ctx context.Context, orderID, txnid string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, types.PaymentStatusPending).
		Updates(map[string]any{
			"payu_txnid":     txnid,
			"payment_status": types.PaymentStatusProcessing,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark order processing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotPayable
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
