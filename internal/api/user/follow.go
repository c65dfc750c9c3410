package user

import (
	"net/http"
	"strconv"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FollowHandler 处理关注关系相关的HTTP请求
type FollowHandler struct {
	followService service.FollowServiceInterface
}

// NewFollowHandler 创建一个新的 FollowHandler 实例
func NewFollowHandler(followService service.FollowServiceInterface) *FollowHandler {
	return &FollowHandler{followService}
}

// FollowUser 关注目标用户，需要认证
func (h *FollowHandler) FollowUser(c *gin.Context) {
	followerID := c.GetInt("user_id")
	targetID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid user id", err))
		return
	}

	if err := h.followService.FollowUser(followerID, targetID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccessWithStatus(c, http.StatusCreated, nil, "User followed successfully")
}

// UnfollowUser 取消关注，幂等操作
func (h *FollowHandler) UnfollowUser(c *gin.Context) {
	followerID := c.GetInt("user_id")
	targetID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid user id", err))
		return
	}

	if err := h.followService.UnfollowUser(followerID, targetID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "User unfollowed successfully")
}

// GetFollowers 分页返回目标用户的粉丝列表
func (h *FollowHandler) GetFollowers(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid user id", err))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	followers, err := h.followService.GetFollowers(targetID, limit, offset)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, followers)
}
