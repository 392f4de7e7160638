package main

import (
	"taskhub/internal/config"
	"taskhub/internal/db"
	clog "taskhub/internal/log"
	"taskhub/internal/presence"
	"taskhub/internal/server"
	"taskhub/internal/service"
	"taskhub/internal/ws"

	"github.com/rs/zerolog/log"
)

func main() {
	// main 负责加载配置、初始化日志、连接数据库并启动服务。
	cfg := config.Load()
	clog.Init(cfg.Env)

	gdb, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	hub := ws.NewHub()
	go hub.Run()

	presSvc := service.NewPresenceService(gdb)
	ticker := presence.NewTicker(cfg.PresenceTickInterval, func() (any, error) {
		return presSvc.ActiveSnapshot()
	}, hub)
	go ticker.Run()
	defer ticker.Stop()

	r := server.SetupRouter(cfg, gdb, hub)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
