package service

import (
	stderrors "errors"
	"time"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/model"
	"musicshare-backend/internal/repository/interfaces"
)

// CommentResponse 是对外返回的评论视图，附带写入时的作者快照
type CommentResponse struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	UserID    int       `json:"userId"`
	PostID    int       `json:"postId"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// InteractionServiceInterface 定义点赞与评论服务对外暴露的方法
type InteractionServiceInterface interface {
	LikePost(userID, postID int) error
	UnlikePost(userID, postID int) error
	CreateComment(userID, postID int, text string) (*CommentResponse, error)
	GetComments(postID, limit, offset int) ([]CommentResponse, error)
}

// InteractionService 处理点赞与评论的业务逻辑
type InteractionService struct {
	interactionRepo interfaces.InteractionRepository
	postRepo        interfaces.PostRepository
	userRepo        interfaces.UserRepository
}

// NewInteractionService 创建一个新的 InteractionService 实例
func NewInteractionService(
	interactionRepo interfaces.InteractionRepository,
	postRepo interfaces.PostRepository,
	userRepo interfaces.UserRepository,
) *InteractionService {
	return &InteractionService{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
	}
}

// 确保 InteractionService 实现了 InteractionServiceInterface
var _ InteractionServiceInterface = (*InteractionService)(nil)

// LikePost 给帖子点赞。不做去重，同一用户重复点赞会产生多条记录。
func (s *InteractionService) LikePost(userID, postID int) error {
	exists, err := s.postRepo.Exists(postID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to like post.", err)
	}
	if !exists {
		return errors.New(errors.ErrPostNotFound, "Post not found.")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to like post.", err)
	}
	if user == nil {
		// 持有有效令牌但用户已不存在，属于异常状态
		return stderrors.New("user not found")
	}

	like := &model.Like{UserID: userID, PostID: postID}
	if err := s.interactionRepo.CreateLike(like); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to like post.", err)
	}
	return nil
}

// UnlikePost 取消点赞，没有点赞记录时也视为成功
func (s *InteractionService) UnlikePost(userID, postID int) error {
	if err := s.interactionRepo.DeleteLikes(postID, userID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to unlike post.", err)
	}
	return nil
}

// CreateComment 给帖子新增评论，返回附带作者快照的评论视图
func (s *InteractionService) CreateComment(userID, postID int, text string) (*CommentResponse, error) {
	exists, err := s.postRepo.Exists(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to create comment.", err)
	}
	if !exists {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found.")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to create comment.", err)
	}
	if user == nil {
		return nil, stderrors.New("user not found")
	}

	comment := &model.Comment{
		Content: text,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.interactionRepo.CreateComment(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to create comment.", err)
	}

	return &CommentResponse{
		ID:        comment.ID,
		Text:      comment.Content,
		UserID:    comment.UserID,
		PostID:    comment.PostID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// GetComments 按创建时间倒序分页返回评论，作者已不存在的评论被过滤掉
func (s *InteractionService) GetComments(postID, limit, offset int) ([]CommentResponse, error) {
	exists, err := s.postRepo.Exists(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load comments.", err)
	}
	if !exists {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found.")
	}

	comments, err := s.interactionRepo.ListComments(postID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load comments.", err)
	}

	results := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		if comment.Author == nil {
			continue
		}
		results = append(results, CommentResponse{
			ID:        comment.ID,
			Text:      comment.Content,
			UserID:    comment.UserID,
			PostID:    comment.PostID,
			Username:  comment.Author.Username,
			AvatarURL: comment.Author.AvatarURL,
			CreatedAt: comment.CreatedAt,
		})
	}
	return results, nil
}
