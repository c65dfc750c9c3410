package service

import (
	"strings"
	"time"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/model"
	"musicshare-backend/internal/repository/interfaces"
	"musicshare-backend/internal/storage"
	"musicshare-backend/internal/util"

	"go.uber.org/zap"
)

// CreatePostInput 是创建帖子的输入，负载为 base64 编码（可能带 data URI 前缀）
type CreatePostInput struct {
	ImageBase64   string `json:"imageBase64"`
	ImageFileType string `json:"imageFileType" binding:"omitempty,imagetype"`
	MusicBase64   string `json:"musicBase64"`
	MusicFileType string `json:"musicFileType" binding:"omitempty,audiotype"`
	Caption       string `json:"caption"`
}

// PostResponse 是对外返回的帖子视图，字段名与前端约定保持 camelCase
type PostResponse struct {
	ID            int       `json:"id"`
	CoverImageURL string    `json:"coverImageUrl"`
	MusicURL      string    `json:"musicUrl"`
	Caption       *string   `json:"caption"`
	CreatedAt     time.Time `json:"createdAt"`
	UserID        int       `json:"userId"`
	Username      string    `json:"username"`
	AvatarURL     *string   `json:"avatarUrl"`
}

// LikedPostResponse 在帖子视图上附加当前调用者是否点过赞
type LikedPostResponse struct {
	PostResponse
	HasLiked bool `json:"hasLiked"`
}

// PostServiceInterface 定义帖子服务对外暴露的方法
type PostServiceInterface interface {
	CreatePost(userID int, input CreatePostInput) (*PostResponse, error)
	GetFeedPosts(limit, offset int) ([]PostResponse, error)
	SearchPosts(query string, limit, offset int) ([]PostResponse, error)
	GetPostByID(postID int) (*PostResponse, error)
}

// PostService 处理与音乐帖子相关的业务逻辑
type PostService struct {
	postRepo interfaces.PostRepository
	userRepo interfaces.UserRepository
	store    storage.ObjectStorage
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository, store storage.ObjectStorage) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		store:    store,
	}
}

// 确保 PostService 实现了 PostServiceInterface
var _ PostServiceInterface = (*PostService)(nil)

// CreatePost 校验输入、上传封面与音频、写入帖子。
// 两次上传顺序执行；音频上传失败时删除已上传的封面，入库失败时删除两个对象。
func (s *PostService) CreatePost(userID int, input CreatePostInput) (*PostResponse, error) {
	if input.ImageBase64 == "" || !strings.HasPrefix(input.ImageFileType, "image/") {
		return nil, errors.New(errors.ErrValidation, "imageBase64 and a valid imageFileType are required.")
	}

	if input.MusicBase64 != "" && input.MusicFileType != "" {
		if !strings.HasPrefix(input.MusicFileType, "audio/") {
			return nil, errors.New(errors.ErrValidation, "musicFileType must be a valid audio type.")
		}
	}

	if input.MusicBase64 == "" || input.MusicFileType == "" {
		return nil, errors.New(errors.ErrValidation, "musicBase64 is required when musicFileType is provided.")
	}

	imageData, err := util.DecodeBase64Payload(input.ImageBase64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "imageBase64 is not valid base64 data.", err)
	}
	musicData, err := util.DecodeBase64Payload(input.MusicBase64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "musicBase64 is not valid base64 data.", err)
	}

	imageUpload, err := s.store.UploadBytes(imageData, input.ImageFileType,
		util.GenerateObjectKey("covers", input.ImageFileType))
	if err != nil {
		util.Logger.Error("封面上传失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, errors.Wrap(errors.ErrStorage, "Failed to create post.", err)
	}

	musicUpload, err := s.store.UploadBytes(musicData, input.MusicFileType,
		util.GenerateObjectKey("audio", input.MusicFileType))
	if err != nil {
		util.Logger.Error("音频上传失败", zap.Error(err), zap.Int("user_id", userID))
		s.cleanupObject(imageUpload.ObjectKey)
		return nil, errors.Wrap(errors.ErrStorage, "Failed to create post.", err)
	}

	post := &model.MusicPost{
		CoverImageURL: imageUpload.ObjectURL,
		AudioURL:      musicUpload.ObjectURL,
		Caption:       nullableCaption(input.Caption),
		UserID:        userID,
	}
	if err := s.postRepo.Create(post); err != nil {
		s.cleanupObject(imageUpload.ObjectKey)
		s.cleanupObject(musicUpload.ObjectKey)
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to create post.", err)
	}

	author, err := s.userRepo.FindByID(userID)
	if err != nil {
		util.Logger.Warn("查询帖子作者失败", zap.Error(err), zap.Int("user_id", userID))
	}
	post.Author = author

	resp := toPostResponse(post)
	return &resp, nil
}

// cleanupObject 尽力删除已上传的对象，失败只记录日志
func (s *PostService) cleanupObject(key string) {
	if err := s.store.Delete(key); err != nil {
		util.Logger.Error("清理已上传对象失败", zap.Error(err), zap.String("object_key", key))
	}
}

// GetFeedPosts 按创建时间倒序分页返回全局帖子流
func (s *PostService) GetFeedPosts(limit, offset int) ([]PostResponse, error) {
	posts, err := s.postRepo.ListFeed(limit, offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load feed.", err)
	}
	return toPostResponses(posts), nil
}

// SearchPosts 对 caption 做全文检索，空白查询返回参数错误
func (s *PostService) SearchPosts(query string, limit, offset int) ([]PostResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New(errors.ErrValidation, "Search query cannot be empty")
	}

	posts, err := s.postRepo.SearchByCaption(query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to search posts.", err)
	}

	// 与查询条件双保险：作者或 caption 为空的行不出现在结果里
	results := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		if post.Author == nil || post.Caption == nil {
			continue
		}
		results = append(results, toPostResponse(post))
	}
	return results, nil
}

// GetPostByID 返回单个帖子，不存在时返回 404 错误
func (s *PostService) GetPostByID(postID int) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load post.", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}
	resp := toPostResponse(post)
	return &resp, nil
}

func nullableCaption(caption string) *string {
	if caption == "" {
		return nil
	}
	return &caption
}

func toPostResponse(post *model.MusicPost) PostResponse {
	resp := PostResponse{
		ID:            post.ID,
		CoverImageURL: post.CoverImageURL,
		MusicURL:      post.AudioURL,
		Caption:       post.Caption,
		CreatedAt:     post.CreatedAt,
		UserID:        post.UserID,
		Username:      "unknown",
	}
	if post.Author != nil {
		resp.Username = post.Author.Username
		resp.AvatarURL = post.Author.AvatarURL
	}
	return resp
}

func toPostResponses(posts []*model.MusicPost) []PostResponse {
	results := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		results = append(results, toPostResponse(post))
	}
	return results
}
