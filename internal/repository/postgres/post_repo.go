package postgres

import (
	"database/sql"
	"strings"

	"musicshare-backend/internal/model"
	"musicshare-backend/internal/util"

	"go.uber.org/zap"
)

// postRepository 实现了 PostRepository 接口
type postRepository struct {
	db *sql.DB
}

// NewPostRepository 创建一个新的 postRepository 实例
func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db}
}

// Create 插入一条音乐帖子
func (r *postRepository) Create(post *model.MusicPost) error {
	query := `INSERT INTO music_posts (cover_image_url, audio_url, caption, user_id)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at`
	err := r.db.QueryRow(query, post.CoverImageURL, post.AudioURL, post.Caption, post.UserID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err), zap.Int("user_id", post.UserID))
		return err
	}
	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

// FindByID 查找帖子及其作者，未找到时返回 (nil, nil)
func (r *postRepository) FindByID(id int) (*model.MusicPost, error) {
	query := `
        SELECT p.id, p.cover_image_url, p.audio_url, p.caption, p.created_at, p.user_id,
               u.username, u.avatar_url
        FROM music_posts p
        LEFT JOIN users u ON u.id = p.user_id
        WHERE p.id = $1`

	post, err := scanPost(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// Exists 判断帖子是否存在
func (r *postRepository) Exists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM music_posts WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// ListFeed 按创建时间倒序分页返回全局帖子流
func (r *postRepository) ListFeed(limit, offset int) ([]*model.MusicPost, error) {
	query := `
        SELECT p.id, p.cover_image_url, p.audio_url, p.caption, p.created_at, p.user_id,
               u.username, u.avatar_url
        FROM music_posts p
        LEFT JOIN users u ON u.id = p.user_id
        ORDER BY p.created_at DESC
        LIMIT $1 OFFSET $2`

	return r.queryPosts(query, limit, offset)
}

// SearchByCaption 对 caption 做全文检索。
// plainto_tsquery 会把多个词合并为 AND 条件；仅匹配 caption 非空且作者存在的帖子，
// 依赖 seed 命令建立的 GIN 索引。
func (r *postRepository) SearchByCaption(query string, limit, offset int) ([]*model.MusicPost, error) {
	searchTerm := strings.Join(strings.Fields(strings.TrimSpace(query)), " & ")

	sqlQuery := `
        SELECT p.id, p.cover_image_url, p.audio_url, p.caption, p.created_at, p.user_id,
               u.username, u.avatar_url
        FROM music_posts p
        JOIN users u ON u.id = p.user_id
        WHERE p.caption IS NOT NULL
          AND to_tsvector('english', p.caption) @@ plainto_tsquery('english', $1)
        ORDER BY p.created_at DESC
        LIMIT $2 OFFSET $3`

	return r.queryPosts(sqlQuery, searchTerm, limit, offset)
}

// ListByAuthor 返回指定用户发布的全部帖子
func (r *postRepository) ListByAuthor(userID int) ([]*model.MusicPost, error) {
	query := `
        SELECT p.id, p.cover_image_url, p.audio_url, p.caption, p.created_at, p.user_id,
               u.username, u.avatar_url
        FROM music_posts p
        LEFT JOIN users u ON u.id = p.user_id
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC`

	return r.queryPosts(query, userID)
}

func (r *postRepository) queryPosts(query string, args ...interface{}) ([]*model.MusicPost, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.MusicPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.MusicPost, error) {
	var post model.MusicPost
	var username sql.NullString
	var avatarURL sql.NullString

	err := row.Scan(
		&post.ID, &post.CoverImageURL, &post.AudioURL, &post.Caption,
		&post.CreatedAt, &post.UserID,
		&username, &avatarURL,
	)
	if err != nil {
		return nil, err
	}

	// username 列本身非空，扫描结果为空说明作者行已不存在
	if username.Valid {
		author := model.User{ID: post.UserID, Username: username.String}
		if avatarURL.Valid {
			author.AvatarURL = &avatarURL.String
		}
		post.Author = &author
	}
	return &post, nil
}
