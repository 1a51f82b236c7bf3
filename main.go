package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"airdrop-service/config"
	"airdrop-service/feed"
	"airdrop-service/services"
	"airdrop-service/web"
)

func main() {
	log.Println("Starting Airdrop Feed Tracker...")

	// 加载配置
	cfg := config.Load()

	// 创建上游客户端
	client := feed.NewClientWithConfig(feed.Config{
		FeedURL: cfg.UpstreamURL,
		Timeout: cfg.FetchTimeout,
	})

	// 创建解析器和协调器
	resolver := services.NewResolver(cfg.Location())
	refresher := services.NewRefresher(client, resolver, cfg.FreshnessWindow, cfg.RefreshInterval)

	// 启动后台刷新(启动时立即刷新一次)
	refresher.Start()

	// 启动Web服务器
	server := web.NewServer(cfg, refresher)
	go func() {
		log.Printf("Web server listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start web server: %v", err)
		}
	}()

	// 等待退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	refresher.Stop()
	server.Stop()
	log.Println("Shutdown complete")
}
