package interfaces

import "musicshare-backend/internal/model"

// PostRepository 接口定义了音乐帖子仓库应该实现的方法
type PostRepository interface {
	Create(post *model.MusicPost) error
	FindByID(id int) (*model.MusicPost, error)
	Exists(id int) (bool, error)
	// ListFeed 按创建时间倒序返回全局帖子流，作者缺失时 Author 为 nil
	ListFeed(limit, offset int) ([]*model.MusicPost, error)
	// SearchByCaption 对 caption 做全文检索（多个词之间为 AND 关系），
	// 仅返回 caption 与作者均非空的帖子
	SearchByCaption(query string, limit, offset int) ([]*model.MusicPost, error)
	ListByAuthor(userID int) ([]*model.MusicPost, error)
}
