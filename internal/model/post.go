package model

import "time"

// MusicPost 表示一条音乐帖子，封面图与音频都存放在对象存储中
type MusicPost struct {
	ID            int       `json:"id"`
	CoverImageURL string    `json:"coverImageUrl"`
	AudioURL      string    `json:"audioUrl"`
	Caption       *string   `json:"caption"`
	CreatedAt     time.Time `json:"createdAt"`
	UserID        int       `json:"userId"`
	Author        *User     `json:"author,omitempty"`
}

// Comment 表示帖子下的一条评论
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    int       `json:"userId"`
	PostID    int       `json:"postId"`
	Author    *User     `json:"author,omitempty"`
}

// Like 表示用户对帖子的点赞记录。
// 注意：(user_id, post_id) 上没有唯一约束，重复点赞会产生多条记录。
type Like struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    int       `json:"userId"`
	PostID    int       `json:"postId"`
}
