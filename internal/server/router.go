package server

import (
	"net/http"
	"time"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/metrics"
	"taskhub/internal/mw"
	"taskhub/internal/service"
	"taskhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupRouter 统一初始化 Gin 中间件、REST API 以及 WebSocket 端点。
func SetupRouter(cfg config.Config, db *gorm.DB, hub *ws.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(mw.CORS(cfg.Env))
	r.Use(mw.RateLimit(rate.Every(time.Second/20), 40))

	userSvc := service.NewUserService(db, cfg)
	roomSvc := service.NewRoomService(db)
	msgSvc := service.NewMessageService(db)
	reactSvc := service.NewReactionService(db)
	notifSvc := service.NewNotificationService(db)
	meetSvc := service.NewMeetingService(db)
	presSvc := service.NewPresenceService(db)
	h := NewHandler(userSvc, roomSvc, msgSvc, reactSvc, notifSvc, meetSvc, presSvc, hub)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/refresh", h.RefreshToken)

	// 需要 Bearer Token 的业务接口。
	authed := api.Group("")
	authed.Use(auth.AuthMiddleware(cfg, db))

	authed.GET("/users", h.Directory)

	authed.POST("/rooms", h.CreateRoom)
	authed.GET("/rooms", h.ListRooms)
	authed.POST("/rooms/private", h.GetOrCreatePrivateRoom)
	authed.PUT("/rooms/:id", h.UpdateRoom)
	authed.DELETE("/rooms/:id", h.DeleteRoom)
	authed.GET("/rooms/:id/members", h.ListMembers)
	authed.POST("/rooms/:id/members", h.AddMember)
	authed.DELETE("/rooms/:id/members/:userID", h.RemoveMember)

	authed.GET("/rooms/:id/messages", h.ListMessages)
	authed.POST("/rooms/:id/messages", h.SendMessage)
	authed.PUT("/messages/:id", h.EditMessage)
	authed.DELETE("/messages/:id", h.DeleteMessage)

	authed.GET("/messages/:id/reactions", h.ListReactions)
	authed.POST("/messages/:id/reactions", h.AddReaction)
	authed.DELETE("/messages/:id/reactions", h.RemoveReaction)

	authed.GET("/notifications", h.ListNotifications)
	authed.POST("/notifications", h.CreateNotification)
	authed.POST("/notifications/:id/read", h.MarkNotificationRead)

	authed.GET("/rooms/:id/meetings", h.ListMeetings)
	authed.POST("/rooms/:id/meetings", h.CreateMeeting)

	authed.POST("/attendance/clock-in", h.ClockIn)
	authed.POST("/attendance/clock-out", h.ClockOut)

	// 实时通道不做鉴权：广播只是加速轮询的提示，不是事实来源。
	r.GET("/ws", ws.Serve(hub, ws.NewRouter(hub)))

	return r
}
