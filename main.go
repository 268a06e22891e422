package main

import (
	"flag"
	"log"
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/router"
)

// @title 理财目标系统 API
// @version 1.0
// @description 个人理财目标系统 API，支持用户注册登录、月度收入记账、储蓄目标管理与数据导出
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		log.Println("理财目标系统 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	// 设置路由
	r := router.SetupRouter(cfg)

	// 启动服务器
	log.Printf("==========================================")
	log.Printf("  🎯 理财目标系统已启动")
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
