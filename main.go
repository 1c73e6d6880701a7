package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fintrack/cache"
	"fintrack/config"
	"fintrack/database"
	"fintrack/logger"
	"fintrack/router"
	"fintrack/store"

	"go.uber.org/zap"
)

// @title 记账看板 API
// @version 1.0
// @description 个人收支记录的增删改查、看板统计与导出
// @host localhost:5000
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 5000 或 :5000")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()
	os.Exit(execute())
}

// execute 启动服务并返回退出码，由 main 负责退出
func execute() int {
	if showVersion {
		fmt.Println("记账看板 v1.0.0")
		return 0
	}

	// 配置加载前先用默认级别输出日志
	bootLog := logger.Must("info")
	defer bootLog.Sync()
	zap.ReplaceGlobals(bootLog)

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		bootLog.Error("加载配置失败", zap.Error(err))
		return 1
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		bootLog.Error("初始化日志失败", zap.Error(err))
		return 1
	}
	zap.ReplaceGlobals(log)
	defer log.Sync()

	config.PrintConfig(cfg, log)

	if err := run(cfg, log); err != nil {
		log.Error("服务异常退出", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("关闭数据库失败", zap.Error(err))
		}
	}()

	opts := []store.Option{store.WithLogger(log)}
	if cfg.Cache.Enabled {
		rdb := cache.NewRedisClient(cfg.Cache)
		defer rdb.Close()
		opts = append(opts, store.WithCache(cache.NewRedisListCache(rdb, cfg.Cache.TTL)))
		log.Info("已启用列表缓存", zap.String("addr", cfg.Cache.Addr))
	}
	transactions := store.New(db, opts...)

	r := router.SetupRouter(cfg, router.Deps{
		Store:  transactions,
		DB:     db,
		Logger: log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("记账看板已启动",
			zap.String("api", "http://localhost"+cfg.Server.Port+"/api/transactions"),
			zap.String("swagger", "http://localhost"+cfg.Server.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	case sig := <-sigCh:
		log.Info("收到退出信号", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
