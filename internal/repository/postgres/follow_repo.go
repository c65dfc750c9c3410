package postgres

import (
	"database/sql"

	"musicshare-backend/internal/model"
	"musicshare-backend/internal/util"

	"go.uber.org/zap"
)

// followRepository 实现了 FollowRepository 接口
type followRepository struct {
	db *sql.DB
}

// NewFollowRepository 创建一个新的 followRepository 实例
func NewFollowRepository(db *sql.DB) *followRepository {
	return &followRepository{db}
}

// Create 插入一条关注记录，与点赞一样不做去重
func (r *followRepository) Create(follow *model.Follow) error {
	query := `INSERT INTO follows (follower_id, followed_id)
              VALUES ($1, $2)
              RETURNING id, created_at`
	err := r.db.QueryRow(query, follow.FollowerID, follow.FollowedID).
		Scan(&follow.ID, &follow.CreatedAt)
	if err != nil {
		util.Logger.Error("创建关注关系失败", zap.Error(err),
			zap.Int("follower_id", follow.FollowerID), zap.Int("followed_id", follow.FollowedID))
		return err
	}
	return nil
}

// Delete 删除 follower 对 followed 的全部关注记录
func (r *followRepository) Delete(followerID, followedID int) error {
	_, err := r.db.Exec(`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID)
	return err
}

// ListFollowers 按关注时间倒序分页返回粉丝的公开资料
func (r *followRepository) ListFollowers(userID, limit, offset int) ([]*model.User, error) {
	query := `
        SELECT u.id, u.username, u.bio, u.avatar_url, u.created_at
        FROM follows f
        JOIN users u ON u.id = f.follower_id
        WHERE f.followed_id = $1
        ORDER BY f.created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Bio, &user.AvatarURL, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
