package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"zhuangtai/internal/config"
	"zhuangtai/internal/controllers"
	"zhuangtai/internal/middleware"
	"zhuangtai/internal/routes"
	"zhuangtai/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "zhuangtai.yaml", "path to config file")
	printReport := flag.Bool("print", false, "print the status report to stdout and exit")
	issueToken := flag.String("issue-token", "", "issue an API token for the named client and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *printReport {
		fmt.Println(services.GenerateStatusReport(cfg.Filter))
		return
	}

	services.InitAuthService(cfg.Token, cfg.TokenExpiry())

	if *issueToken != "" {
		token, err := services.GenerateToken(*issueToken)
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	controllers.Configure(cfg.Filter, cfg.RenderConfig())
	services.InitWebSocketHub(cfg.Filter, time.Duration(cfg.BroadcastInterval)*time.Second)

	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter()))

	routes.RegisterStatusRoutes(r)
	routes.RegisterMetricsRoutes(r)
	routes.RegisterWebSocketRoutes(r)

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
