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

	"budget/config"
	"budget/database"
	"budget/logger"
	"budget/router"
	"budget/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// @title 月度预算 API
// @version 1.0
// @description 按月记录收入与支出（needs/wants/savings），自动维护每月汇总与结余
// @host localhost:8080
// @BasePath /

const version = "v1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("月度预算 " + version)
		return
	}

	if err := run(); err != nil {
		logrus.WithError(err).Fatal("服务异常退出")
	}
}

func run() error {
	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}

	logger.Init(cfg.Log)
	log := logger.WithComponent(logger.ComponentApp)
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	svc := service.NewBudgetService(database.GetDB())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Integrity.ReconcileOnStartup {
		if _, err := svc.Reconcile(ctx); err != nil {
			return fmt.Errorf("启动时一致性检查失败: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router.SetupRouter(ctx, cfg, svc),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.Server.Port).Info("月度预算服务已启动")
		log.Infof("Swagger: http://localhost%s/swagger/index.html", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	})
	if cfg.Integrity.Interval > 0 {
		g.Go(func() error {
			return svc.RunReconciler(gctx, cfg.Integrity.Interval)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("正在关闭服务")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
