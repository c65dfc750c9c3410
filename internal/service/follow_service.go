package service

import (
	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/model"
	"musicshare-backend/internal/repository/interfaces"
)

// FollowServiceInterface 定义关注服务对外暴露的方法
type FollowServiceInterface interface {
	FollowUser(followerID, targetUserID int) error
	UnfollowUser(followerID, targetUserID int) error
	GetFollowers(targetUserID, limit, offset int) ([]UserProfileResponse, error)
}

// FollowService 处理关注关系的业务逻辑
type FollowService struct {
	followRepo interfaces.FollowRepository
	userRepo   interfaces.UserRepository
}

// NewFollowService 创建一个新的 FollowService 实例
func NewFollowService(followRepo interfaces.FollowRepository, userRepo interfaces.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// 确保 FollowService 实现了 FollowServiceInterface
var _ FollowServiceInterface = (*FollowService)(nil)

// FollowUser 关注目标用户。与点赞一样不做去重，也不阻止自我关注。
func (s *FollowService) FollowUser(followerID, targetUserID int) error {
	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to follow user.", err)
	}
	if target == nil {
		return errors.New(errors.ErrUserNotFound, "User not found")
	}

	follow := &model.Follow{FollowerID: followerID, FollowedID: targetUserID}
	if err := s.followRepo.Create(follow); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to follow user.", err)
	}
	return nil
}

// UnfollowUser 取消关注，没有关注记录时也视为成功
func (s *FollowService) UnfollowUser(followerID, targetUserID int) error {
	if err := s.followRepo.Delete(followerID, targetUserID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to unfollow user.", err)
	}
	return nil
}

// GetFollowers 分页返回目标用户的粉丝资料
func (s *FollowService) GetFollowers(targetUserID, limit, offset int) ([]UserProfileResponse, error) {
	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load user.", err)
	}
	if target == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	followers, err := s.followRepo.ListFollowers(targetUserID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load followers.", err)
	}

	results := make([]UserProfileResponse, 0, len(followers))
	for _, follower := range followers {
		results = append(results, UserProfileResponse{
			ID:        follower.ID,
			Username:  follower.Username,
			Bio:       follower.Bio,
			AvatarURL: follower.AvatarURL,
			CreatedAt: follower.CreatedAt,
		})
	}
	return results, nil
}
