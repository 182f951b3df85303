package service

import "errors"

// 业务侧哨兵错误，handler 层用 errors.Is 映射为响应码。
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("password too short")

	ErrResetCodeInvalid     = errors.New("reset code invalid")
	ErrResetCodeTooFrequent = errors.New("reset code requested too frequently")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")

	ErrInvalidProductInput = errors.New("invalid product input")
	ErrOrderEmpty          = errors.New("order has no items")
	ErrInvalidOrderItem    = errors.New("invalid order item")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductInactive     = errors.New("product not available")
	ErrOrderStatusInvalid  = errors.New("order status transition not allowed")
	ErrCategoryInUse       = errors.New("category still has products")
	ErrCategoryNameMissing = errors.New("category name required")
)
