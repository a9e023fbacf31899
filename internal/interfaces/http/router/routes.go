// Package router 提供 HTTP 路由配置
package router

import (
	"campus-life-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 认证管理
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/me", h.Auth.Me)
	}

	// 公开内容
	public := v1.Group("/public")
	{
		public.GET("/announcements", h.Public.Announcements)
		public.GET("/credits", h.Public.Credits)
	}

	// 存档与游玩
	saves := v1.Group("/saves", middleware.RequirePermission(middleware.PermPlay))
	{
		saves.POST("", h.Save.Create)
		saves.GET("", h.Save.List)
		saves.GET("/:sid", h.Save.Get)
		saves.PUT("/:sid/name", h.Save.Rename)
		saves.DELETE("/:sid", h.Save.Delete)

		// 地点剧本与执行
		saves.GET("/:sid/scripts", h.Script.ListByLocation)
		saves.GET("/:sid/locations/:location/scripts", h.Script.ListByLocation)
		saves.POST("/:sid/scripts/:scriptId/execute", h.Script.Execute)

		// 阶段结算
		saves.GET("/:sid/settlement/preview", h.Settlement.Preview)
		saves.POST("/:sid/settlement/confirm", h.Settlement.Confirm)

		// 勋章
		saves.GET("/:sid/badges", h.Badge.List)
		saves.GET("/:sid/badges/unlocked", h.Badge.ListUnlocked)
		saves.POST("/:sid/badges/scan", h.Badge.Scan)
	}

	// 创意工坊
	workshop := v1.Group("/workshop", middleware.RequirePermission(middleware.PermWorkshopWrite))
	{
		chains := workshop.Group("/chains")
		{
			chains.POST("", h.Workshop.CreateChain)
			chains.GET("", h.Workshop.ListChains)
			chains.GET("/:cid", h.Workshop.GetChain)
			chains.PUT("/:cid", h.Workshop.UpdateChain)
			chains.DELETE("/:cid", h.Workshop.DeleteChain)

			chains.POST("/:cid/nodes", h.Workshop.CreateNode)
			chains.PUT("/:cid/nodes/:nid", h.Workshop.UpdateNode)
			chains.DELETE("/:cid/nodes/:nid", h.Workshop.DeleteNode)
			chains.PUT("/:cid/positions", h.Workshop.UpdatePositions)
			chains.PUT("/:cid/import", h.Workshop.ToggleImport)
		}
	}

	// 后台管理
	admin := v1.Group("/admin", middleware.RequireAdmin())
	{
		scripts := admin.Group("/scripts")
		{
			scripts.POST("", h.Admin.CreateScript)
			scripts.GET("", h.Admin.ListScripts)
			scripts.GET("/:scriptId", h.Admin.GetScript)
			scripts.PUT("/:scriptId", h.Admin.UpdateScript)
			scripts.DELETE("/:scriptId", h.Admin.DeleteScript)
		}

		badges := admin.Group("/badges")
		{
			badges.POST("", h.Admin.CreateBadge)
			badges.GET("", h.Admin.ListBadges)
			badges.GET("/:bid", h.Admin.GetBadge)
			badges.PUT("/:bid", h.Admin.UpdateBadge)
			badges.DELETE("/:bid", h.Admin.DeleteBadge)
		}

		admin.PUT("/settings/:key", h.Admin.UpdateSetting)
	}
}
