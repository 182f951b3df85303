package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 异步任务类型常量
const (
	TaskOrderConfirmationEmail = "email:order_confirmation"
)

// 队列名称常量
const (
	QueueDefault = "default"
)
