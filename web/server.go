package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"airdrop-service/config"
	"airdrop-service/services"
)

type Server struct {
	config     *config.Config
	refresher  *services.Refresher
	httpServer *http.Server
}

func NewServer(cfg *config.Config, refresher *services.Refresher) *Server {
	return &Server{
		config:    cfg,
		refresher: refresher,
	}
}

func (s *Server) Start() error {
	router := mux.NewRouter()

	// 数据路由
	router.HandleFunc("/fetch-data", s.handleFetchData).Methods("GET")
	router.HandleFunc("/last-update", s.handleLastUpdate).Methods("GET")

	// API路由
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/refresh", s.handleForceRefresh).Methods("POST")

	// Prometheus指标
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// 静态文件(如果需要)
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.config.StaticDir)))

	// CORS配置
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// handleHealth 健康检查
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}
