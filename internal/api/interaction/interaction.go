package interaction

import (
	"net/http"
	"strconv"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/service"
	"musicshare-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InteractionHandler 处理点赞与评论相关的HTTP请求
type InteractionHandler struct {
	interactionService service.InteractionServiceInterface
}

// NewInteractionHandler 创建一个新的 InteractionHandler 实例
func NewInteractionHandler(interactionService service.InteractionServiceInterface) *InteractionHandler {
	return &InteractionHandler{interactionService}
}

// LikePost 给帖子点赞，需要认证
func (h *InteractionHandler) LikePost(c *gin.Context) {
	userID := c.GetInt("user_id")
	postID, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid post id", err))
		return
	}

	if err := h.interactionService.LikePost(userID, postID); err != nil {
		util.Logger.Warn("点赞失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("post_id", postID))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post liked successfully"})
}

// UnlikePost 取消点赞，幂等操作，没有点赞记录时同样返回成功
func (h *InteractionHandler) UnlikePost(c *gin.Context) {
	userID := c.GetInt("user_id")
	postID, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid post id", err))
		return
	}

	if err := h.interactionService.UnlikePost(userID, postID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post unliked successfully"})
}

// CreateComment 给帖子新增评论，需要认证
func (h *InteractionHandler) CreateComment(c *gin.Context) {
	userID := c.GetInt("user_id")
	postID, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid post id", err))
		return
	}

	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.Logger.Warn("创建评论失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "text is required", err))
		return
	}

	resp, err := h.interactionService.CreateComment(userID, postID, body.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetComments 分页返回帖子的评论，无需认证
func (h *InteractionHandler) GetComments(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid post id", err))
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

	comments, err := h.interactionService.GetComments(postID, limit, offset)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
