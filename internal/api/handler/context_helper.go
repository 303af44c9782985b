package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inventra/backend/internal/service"
	pkgerrors "inventra/backend/pkg/errors"
	"inventra/backend/pkg/response"
)

// 认证中间件写入的上下文键
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, CtxUserID)
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, CtxRole)
}

// MustGetActor 组装操作者快照，供审计记录使用
func MustGetActor(c *gin.Context) (service.Actor, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{ID: id, Name: c.GetString(CtxUsername), Role: role}, true
}

// tokenMeta 提取当前 Access Token 的 jti 与过期时间
func tokenMeta(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(CtxTokenJTI)
	exp, ok := c.Get(CtxTokenExp)
	if jti == "" || !ok {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", time.Time{}, false
	}
	t, ok := exp.(time.Time)
	if !ok {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", time.Time{}, false
	}
	return jti, t, true
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// paramID 读取路径中的 UUID 参数，格式无效时写入 422 响应
func paramID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if uuid.Validate(id) != nil {
		response.FromError(c, pkgerrors.ErrInvalidID)
		return "", false
	}
	return id, true
}

// bindFailed 参数校验失败的统一响应
func bindFailed(c *gin.Context) {
	response.BadRequest(c, response.CodeInvalidArgument, "参数校验失败")
}
