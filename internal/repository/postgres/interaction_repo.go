package postgres

import (
	"database/sql"

	"musicshare-backend/internal/model"
	"musicshare-backend/internal/util"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// interactionRepository 实现了 InteractionRepository 接口
type interactionRepository struct {
	db *sql.DB
}

// NewInteractionRepository 创建一个新的 interactionRepository 实例
func NewInteractionRepository(db *sql.DB) *interactionRepository {
	return &interactionRepository{db}
}

// CreateLike 插入一条点赞记录。(user_id, post_id) 无唯一约束，重复点赞会产生多条记录。
func (r *interactionRepository) CreateLike(like *model.Like) error {
	query := `INSERT INTO likes (user_id, post_id)
              VALUES ($1, $2)
              RETURNING id, created_at`
	err := r.db.QueryRow(query, like.UserID, like.PostID).Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		util.Logger.Error("创建点赞失败", zap.Error(err),
			zap.Int("user_id", like.UserID), zap.Int("post_id", like.PostID))
		return err
	}
	return nil
}

// DeleteLikes 删除 (postID, userID) 的全部点赞记录
func (r *interactionRepository) DeleteLikes(postID, userID int) error {
	_, err := r.db.Exec(`DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		util.Logger.Error("删除点赞失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("post_id", postID))
	}
	return err
}

// FindLikedPostIDs 返回 postIDs 中被 userID 点赞过的帖子ID集合
func (r *interactionRepository) FindLikedPostIDs(userID int, postIDs []int) ([]int, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	query := `SELECT DISTINCT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`
	rows, err := r.db.Query(query, userID, pq.Array(postIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateComment 插入一条评论
func (r *interactionRepository) CreateComment(comment *model.Comment) error {
	query := `INSERT INTO comments (content, user_id, post_id)
              VALUES ($1, $2, $3)
              RETURNING id, created_at`
	err := r.db.QueryRow(query, comment.Content, comment.UserID, comment.PostID).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err),
			zap.Int("user_id", comment.UserID), zap.Int("post_id", comment.PostID))
		return err
	}
	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID))
	return nil
}

// ListComments 按创建时间倒序分页返回评论。
// content 为空的异常行直接跳过；作者行缺失时 Author 为 nil，由上层过滤。
func (r *interactionRepository) ListComments(postID, limit, offset int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.content, c.created_at, c.user_id, c.post_id,
               u.username, u.avatar_url
        FROM comments c
        LEFT JOIN users u ON u.id = c.user_id
        WHERE c.post_id = $1
        ORDER BY c.created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var content sql.NullString
		var username sql.NullString
		var avatarURL sql.NullString

		err := rows.Scan(
			&comment.ID, &content, &comment.CreatedAt, &comment.UserID, &comment.PostID,
			&username, &avatarURL,
		)
		if err != nil {
			return nil, err
		}
		if !content.Valid {
			continue
		}
		comment.Content = content.String

		if username.Valid {
			author := model.User{ID: comment.UserID, Username: username.String}
			if avatarURL.Valid {
				author.AvatarURL = &avatarURL.String
			}
			comment.Author = &author
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
