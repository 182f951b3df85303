package app

import (
	"os"
	"time"

	"github.com/nextcart/nextcart/internal/config"
	"github.com/nextcart/nextcart/internal/logger"

	"go.uber.org/zap"
)

// 运行模式：api 只起 HTTP，worker 只起队列消费，all 二者都起
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// withDefaults 补齐缺省的启动选项
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	return o
}
