package service

import (
	"log"
	"sync"
	"time"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/model"
	"musicshare-backend/internal/repository/interfaces"
	"musicshare-backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// UserProfileResponse 是对外返回的公开用户资料
type UserProfileResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Bio       *string   `json:"bio"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserServiceInterface 定义用户服务对外暴露的方法
type UserServiceInterface interface {
	Register(username, email, password string) (*model.User, error)
	Login(email, password string) (*model.User, error)
	GetUserProfile(userID int) (*UserProfileResponse, error)
	GetUserLikes(callerID, targetUserID int) ([]LikedPostResponse, error)
	Logout(token string)
	IsTokenBlacklisted(token string) bool
}

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo        interfaces.UserRepository
	postRepo        interfaces.PostRepository
	interactionRepo interfaces.InteractionRepository
	emailService    *EmailService
	tokenBlacklist  map[string]time.Time
	blacklistMutex  sync.RWMutex
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(
	userRepo interfaces.UserRepository,
	postRepo interfaces.PostRepository,
	interactionRepo interfaces.InteractionRepository,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		postRepo:        postRepo,
		interactionRepo: interactionRepo,
		emailService:    emailService,
		tokenBlacklist:  make(map[string]time.Time),
	}
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)

// Register 注册新用户，用户名与邮箱都必须唯一
func (s *UserService) Register(username, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "username already exists")
	}

	existing, err = s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		s.emailService.SendWelcomeEmail(user.Email, user.Username)
	}

	return user, nil
}

// Login 用户登录
func (s *UserService) Login(email, password string) (*model.User, error) {
	log.Printf("尝试用户登录：%s", email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Printf("用户登录失败，未找到用户：%s", email)
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("用户登录失败，密码不正确：%v", err)
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}

	log.Printf("用户登录成功：ID=%d", user.ID)
	return user, nil
}

// GetUserProfile 返回公开用户资料，用户不存在时返回 404 错误
func (s *UserService) GetUserProfile(userID int) (*UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load user.", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	return &UserProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}, nil
}

// GetUserLikes 返回目标用户发布的帖子并标记调用者是否点过赞。
// 注意：尽管路由叫 likes，这里沿用线上行为返回的是“该用户发布的帖子”，
// 目标用户不存在或没有发布过帖子时都返回 404。
// callerID 为 0 表示匿名调用者，hasLiked 恒为 false。
func (s *UserService) GetUserLikes(callerID, targetUserID int) ([]LikedPostResponse, error) {
	user, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load user.", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	posts, err := s.postRepo.ListByAuthor(targetUserID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load posts.", err)
	}
	if len(posts) == 0 {
		return nil, errors.New(errors.ErrResourceNotFound, "No liked posts found for this user.")
	}

	likedSet := make(map[int]bool)
	if callerID > 0 {
		postIDs := make([]int, 0, len(posts))
		for _, post := range posts {
			postIDs = append(postIDs, post.ID)
		}
		likedIDs, err := s.interactionRepo.FindLikedPostIDs(callerID, postIDs)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "Failed to load likes.", err)
		}
		for _, id := range likedIDs {
			likedSet[id] = true
		}
	}

	results := make([]LikedPostResponse, 0, len(posts))
	for _, post := range posts {
		results = append(results, LikedPostResponse{
			PostResponse: toPostResponse(post),
			HasLiked:     likedSet[post.ID],
		})
	}
	return results, nil
}

// Logout 把令牌加入黑名单，黑名单保留24小时（与令牌有效期一致）
func (s *UserService) Logout(token string) {
	s.blacklistMutex.Lock()
	s.tokenBlacklist[token] = time.Now().Add(24 * time.Hour)
	s.blacklistMutex.Unlock()
	util.Logger.Info("用户注销，令牌已加入黑名单")
}

// IsTokenBlacklisted 判断令牌是否已被注销
func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	expiry, exists := s.tokenBlacklist[token]
	s.blacklistMutex.RUnlock()
	if !exists {
		return false
	}
	if time.Now().After(expiry) {
		s.blacklistMutex.Lock()
		delete(s.tokenBlacklist, token)
		s.blacklistMutex.Unlock()
		return false
	}
	return true
}
