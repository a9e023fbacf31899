package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageRequest 分页请求参数
type PageRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Normalize 规范化分页参数
func (r *PageRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
}

// BindPage 从 Gin Context 绑定分页参数
func BindPage(c *gin.Context) PageRequest {
	req := PageRequest{
		Page:     parseIntWithDefault(c.Query("page"), 1),
		PageSize: parseIntWithDefault(c.Query("page_size"), 20),
	}
	req.Normalize()
	return req
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// BindID 从 URI 绑定数字 ID，非法时返回 0
func BindID(c *gin.Context, name string) int64 {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// BindSaveID 从 URI 绑定存档 ID
func BindSaveID(c *gin.Context) int64 {
	return BindID(c, "sid")
}

// BindScriptID 从 URI 绑定剧本 ID
func BindScriptID(c *gin.Context) int64 {
	return BindID(c, "scriptId")
}

// BindBadgeID 从 URI 绑定勋章 ID
func BindBadgeID(c *gin.Context) int64 {
	return BindID(c, "bid")
}

// BindChainID 从 URI 绑定剧本链 ID
func BindChainID(c *gin.Context) int64 {
	return BindID(c, "cid")
}

// BindNodeID 从 URI 绑定工坊节点 ID
func BindNodeID(c *gin.Context) int64 {
	return BindID(c, "nid")
}

// UserID 从 Gin Context 获取当前用户 ID
func UserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
