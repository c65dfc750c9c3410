package interfaces

import "musicshare-backend/internal/model"

// FollowRepository 接口定义了关注关系仓库应该实现的方法
type FollowRepository interface {
	Create(follow *model.Follow) error
	// Delete 删除 follower 对 followed 的全部关注记录，不存在时也不报错
	Delete(followerID, followedID int) error
	ListFollowers(userID, limit, offset int) ([]*model.User, error)
}
