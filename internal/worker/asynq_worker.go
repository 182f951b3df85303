package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/nextcart/nextcart/internal/logger"
	"github.com/nextcart/nextcart/internal/provider"
	"github.com/nextcart/nextcart/internal/queue"
	"github.com/nextcart/nextcart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmation_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_order_confirmation_skip_empty_receiver", "order_id", order.ID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_confirmation_skip_email_service_nil", "order_id", order.ID)
		return nil
	}

	err = c.EmailService.SendOrderConfirmation(user.Email, service.OrderConfirmationInput{
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice,
		ItemCount:  len(order.Items),
	})
	if err != nil {
		// 邮件服务未配置属于部署问题，不重试
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Warnw("worker_order_confirmation_email_service_unavailable", "order_id", order.ID, "error", err)
			return nil
		}
		logger.Warnw("worker_order_confirmation_send_failed", "order_id", order.ID, "error", err)
		return err
	}

	logger.Infow("worker_order_confirmation_sent", "order_id", order.ID, "email", user.Email)
	return nil
}
