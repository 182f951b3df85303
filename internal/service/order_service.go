package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/nextcart/nextcart/internal/constants"
	"github.com/nextcart/nextcart/internal/logger"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/queue"
	"github.com/nextcart/nextcart/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// OrderItemInput 下单商品项
type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	UserID           uint
	Items            []OrderItemInput
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
}

// allowedStatusTransitions 订单状态流转表
var allowedStatusTransitions = map[string][]string{
	constants.OrderStatusPending: {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped: {constants.OrderStatusDelivered},
}

// Create 创建订单。总价按下单时的商品单价一次性结算，
// 写入后不再随商品改价重算；订单与订单项在同一事务内落库。
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrOrderEmpty
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product_id=%d quantity=%d", ErrInvalidOrderItem, item.ProductID, item.Quantity)
		}
	}

	productIDs := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		products, err := productRepo.ListByIDs(productIDs)
		if err != nil {
			return err
		}
		productByID := make(map[uint]*models.Product, len(products))
		for i := range products {
			productByID[products[i].ID] = &products[i]
		}

		now := time.Now()
		var total models.Money
		items := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			product, ok := productByID[item.ProductID]
			if !ok {
				return fmt.Errorf("%w: id=%d", ErrProductNotFound, item.ProductID)
			}
			if !product.IsActive {
				return fmt.Errorf("%w: id=%d", ErrProductInactive, item.ProductID)
			}
			lineTotal := product.Price.MulQuantity(item.Quantity)
			total = total.Plus(lineTotal)
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
				LineTotal:   lineTotal,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}

		order = &models.Order{
			UserID:           input.UserID,
			Status:           constants.OrderStatusPending,
			TotalPrice:       total,
			ShippingAddress1: strings.TrimSpace(input.ShippingAddress1),
			ShippingAddress2: strings.TrimSpace(input.ShippingAddress2),
			City:             strings.TrimSpace(input.City),
			Zip:              strings.TrimSpace(input.Zip),
			Country:          strings.TrimSpace(input.Country),
			Phone:            strings.TrimSpace(input.Phone),
			DateOrdered:      now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	s.dispatchConfirmationEmail(order)
	return s.orderRepo.GetByID(order.ID)
}

// dispatchConfirmationEmail 投递确认邮件任务，失败只记日志不影响下单
func (s *OrderService) dispatchConfirmationEmail(order *models.Order) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{
		OrderID: order.ID,
	})
	if err != nil {
		logger.Errorw("enqueue_order_confirmation_failed", "order_id", order.ID, "error", err)
	}
}

// Get 管理端获取订单详情
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetForUser 获取用户自己的订单详情
func (s *OrderService) GetForUser(id uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListForUser 用户订单列表
func (s *OrderService) ListForUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 更新订单状态，按流转表校验
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !statusTransitionAllowed(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderStatusInvalid, order.Status, status)
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(id)
}

// Delete 删除订单
func (s *OrderService) Delete(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	return s.orderRepo.Delete(id)
}

// Stats 销售统计
type Stats struct {
	TotalSales models.Money `json:"total_sales"`
	OrderCount int64        `json:"order_count"`
}

// GetStats 统计销售总额与订单数，取消订单不计入销售额
func (s *OrderService) GetStats() (*Stats, error) {
	totalSales, err := s.orderRepo.SumTotalPrice([]string{constants.OrderStatusCanceled})
	if err != nil {
		return nil, err
	}
	count, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	return &Stats{TotalSales: totalSales, OrderCount: count}, nil
}

func statusTransitionAllowed(from, to string) bool {
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
