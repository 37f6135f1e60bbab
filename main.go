package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"budget/config"
	"budget/database"
	"budget/middleware"
	"budget/router"
	"budget/service"
)

// @title 记账助手 API
// @version 1.0
// @description 个人记账 API，支持支出、储蓄、投资与储蓄目标管理，图表汇总和数据导出
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
	tokenUser   string
	tokenEmail  string
	seedUser    string
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
	flag.StringVar(&tokenUser, "token", "", "为指定用户签发调试令牌后退出")
	flag.StringVar(&tokenEmail, "token-email", "", "调试令牌携带的邮箱（可选）")
	flag.StringVar(&seedUser, "seed", "", "启动前为指定用户写入演示数据")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("记账助手 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	middleware.InitJWT(cfg)

	if tokenUser != "" {
		token, err := middleware.GenerateToken(tokenUser, tokenEmail, cfg.JWT.ExpireTime)
		if err != nil {
			log.Fatalf("签发令牌失败: %v", err)
		}
		fmt.Println(token)
		return
	}

	config.PrintConfig(cfg)

	store, err := database.NewStore(cfg)
	if err != nil {
		log.Fatalf("存储初始化失败: %v", err)
	}

	records := service.NewRecordService(store, service.Options{
		CapGoalsAtTarget: cfg.Records.GoalCapAtTarget,
	})

	if seedUser != "" {
		if err := database.Seed(context.Background(), records, seedUser); err != nil {
			log.Fatalf("写入演示数据失败: %v", err)
		}
	}

	emailService := service.NewEmailService(&cfg.Email)

	r := router.SetupRouter(cfg, records, emailService)

	log.Printf("==========================================")
	log.Printf("  💰 记账助手已启动")
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
