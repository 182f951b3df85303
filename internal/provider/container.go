package provider

import (
	"github.com/nextcart/nextcart/internal/cache"
	"github.com/nextcart/nextcart/internal/config"
	"github.com/nextcart/nextcart/internal/logger"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/queue"
	"github.com/nextcart/nextcart/internal/repository"
	"github.com/nextcart/nextcart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo              repository.UserRepository
	PasswordResetCodeRepo repository.PasswordResetCodeRepository
	CategoryRepo          repository.CategoryRepository
	ProductRepo           repository.ProductRepository
	OrderRepo             repository.OrderRepository

	// Services
	EmailService         *service.EmailService
	PasswordResetService *service.PasswordResetService
	AuthService          *service.AuthService
	CategoryService      *service.CategoryService
	ProductService       *service.ProductService
	OrderService         *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PasswordResetCodeRepo = repository.NewPasswordResetCodeRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.PasswordResetService = service.NewPasswordResetService(c.Config.ResetCode, c.PasswordResetCodeRepo, c.EmailService)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.PasswordResetService)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.OrderService = service.NewOrderService(models.DB, c.OrderRepo, c.ProductRepo, c.UserRepo, c.QueueClient)
}

// Close 释放容器持有的资源
func (c *Container) Close() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
