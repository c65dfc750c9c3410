package user

import (
	"net/http"
	"strconv"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/service"
	"musicshare-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 处理用户资料相关的HTTP请求
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{userService}
}

// GetUserProfile 返回公开用户资料，无需认证
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid user id", err))
		return
	}

	profile, err := h.userService.GetUserProfile(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetUserLikes 返回目标用户发布的帖子并附带 hasLiked 标记。
// 认证是可选的：匿名访问时 hasLiked 恒为 false。
func (h *UserHandler) GetUserLikes(c *gin.Context) {
	targetUserID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid user id", err))
		return
	}

	callerID := c.GetInt("user_id") // 未认证时为 0

	posts, err := h.userService.GetUserLikes(callerID, targetUserID)
	if err != nil {
		util.Logger.Debug("获取用户帖子失败", zap.Error(err), zap.Int("user_id", targetUserID))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
