package interfaces

import "musicshare-backend/internal/model"

// InteractionRepository 接口定义了点赞与评论仓库应该实现的方法
type InteractionRepository interface {
	CreateLike(like *model.Like) error
	// DeleteLikes 删除 (postID, userID) 的全部点赞记录，不存在时也不报错
	DeleteLikes(postID, userID int) error
	// FindLikedPostIDs 返回 postIDs 中被 userID 点赞过的帖子ID集合
	FindLikedPostIDs(userID int, postIDs []int) ([]int, error)
	CreateComment(comment *model.Comment) error
	// ListComments 按创建时间倒序分页返回评论，作者缺失时 Author 为 nil
	ListComments(postID, limit, offset int) ([]*model.Comment, error)
}
