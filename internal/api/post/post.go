package post

import (
	"net/http"
	"strconv"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/service"
	"musicshare-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 处理与音乐帖子相关的HTTP请求
type PostHandler struct {
	postService service.PostServiceInterface
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService service.PostServiceInterface) *PostHandler {
	return &PostHandler{postService}
}

// CreatePost 处理创建帖子的请求，封面与音频以 base64 形式提交
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetInt("user_id")

	var input service.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Logger.Warn("创建帖子失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	resp, err := h.postService.CreatePost(userID, input)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err), zap.Int("user_id", userID))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFeedPosts 返回按时间倒序的全局帖子流，无需认证
func (h *PostHandler) GetFeedPosts(c *gin.Context) {
	limit, offset := paginationParams(c)

	posts, err := h.postService.GetFeedPosts(limit, offset)
	if err != nil {
		util.Logger.Error("获取帖子流失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// SearchPosts 按 caption 全文检索帖子
func (h *PostHandler) SearchPosts(c *gin.Context) {
	limit, offset := paginationParams(c)
	query := c.Query("query")

	posts, err := h.postService.SearchPosts(query, limit, offset)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPostByID 返回单个帖子
func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid post id", err))
		return
	}

	resp, err := h.postService.GetPostByID(postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// paginationParams 解析 limit/offset 查询参数，默认 limit=10 offset=0
func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
