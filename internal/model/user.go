package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // 密码哈希不应在JSON中暴露
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Follow 表示用户之间的关注关系（follower 关注 followed）
type Follow struct {
	ID         int       `json:"id"`
	FollowerID int       `json:"followerId"`
	FollowedID int       `json:"followedId"`
	CreatedAt  time.Time `json:"createdAt"`
}
