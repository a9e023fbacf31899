package middleware

import (
	"net/http"

	"campus-life-api/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// Permission 权限类型
type Permission string

// 权限常量定义
const (
	PermPlay          Permission = "game:play"
	PermWorkshopWrite Permission = "workshop:write"
	PermAdminAccess   Permission = "admin:access"
)

// rolePermissions 角色-权限映射表
var rolePermissions = map[entity.UserRole][]Permission{
	entity.RoleAdmin:  {PermPlay, PermWorkshopWrite, PermAdminAccess},
	entity.RoleMember: {PermPlay, PermWorkshopWrite},
}

// HasPermission 检查角色是否具有指定权限
func HasPermission(role entity.UserRole, perm Permission) bool {
	permissions, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// RequirePermission 权限检查中间件
func RequirePermission(perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := c.GetString("role")
		if roleStr == "" {
			abortForbidden(c, "missing role in context")
			return
		}

		if !HasPermission(entity.UserRole(roleStr), perm) {
			abortForbidden(c, "permission denied")
			return
		}

		c.Next()
	}
}

// RequireAdmin 管理员权限检查中间件
func RequireAdmin() gin.HandlerFunc {
	return RequirePermission(PermAdminAccess)
}

// abortForbidden 终止请求并返回 403
func abortForbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"code":     "2004",
		"message":  msg,
		"trace_id": c.GetString("trace_id"),
	})
}
