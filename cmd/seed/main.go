package main

import (
	"database/sql"
	"fmt"

	"musicshare-backend/config"
	"musicshare-backend/internal/util"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// 建表语句。与线上结构保持一致：likes/follows 上刻意没有唯一约束。
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		bio TEXT,
		avatar_url TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS music_posts (
		id SERIAL PRIMARY KEY,
		cover_image_url TEXT NOT NULL,
		audio_url TEXT NOT NULL,
		caption TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id INTEGER NOT NULL REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id SERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id INTEGER NOT NULL REFERENCES users(id),
		post_id INTEGER NOT NULL REFERENCES music_posts(id)
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id SERIAL PRIMARY KEY,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id INTEGER NOT NULL REFERENCES users(id),
		post_id INTEGER NOT NULL REFERENCES music_posts(id)
	)`,
	`CREATE TABLE IF NOT EXISTS follows (
		id SERIAL PRIMARY KEY,
		follower_id INTEGER NOT NULL REFERENCES users(id),
		followed_id INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	// caption 全文检索依赖的 GIN 索引
	`CREATE INDEX IF NOT EXISTS music_posts_caption_search_idx
		ON music_posts USING gin (to_tsvector('english', caption))`,
}

func main() {
	config.Init()
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("开始初始化数据库")

	db, err := sql.Open("postgres", config.AppConfig.DatabaseDSN())
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}

	schema := config.AppConfig.DBSchema
	if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)); err != nil {
		util.Logger.Fatal("创建 schema 失败", zap.Error(err))
	}

	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			util.Logger.Fatal("执行建表语句失败", zap.Error(err), zap.String("stmt", stmt))
		}
	}
	util.Logger.Info("表结构同步完成")

	// 仅用于开发环境的固定账号
	seedUser(db, config.AppConfig.AdminUserID, config.AppConfig.AdminUsername, "admin@admin.org", "admin123")
	seedUser(db, config.AppConfig.GuestUserID, config.AppConfig.GuestUsername, "guest@guest.org", "guest123")

	// 显式插入过固定ID后，把序列推进到当前最大值
	if _, err := db.Exec(`SELECT setval('users_id_seq', GREATEST((SELECT MAX(id) FROM users), 1))`); err != nil {
		util.Logger.Error("更新用户ID序列失败", zap.Error(err))
	}

	util.Logger.Info("数据库初始化完成")
}

func seedUser(db *sql.DB, id int, username, email, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		util.Logger.Fatal("生成密码哈希失败", zap.Error(err))
	}

	query := `INSERT INTO users (id, username, email, password_hash)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (id) DO NOTHING`
	if _, err := db.Exec(query, id, username, email, string(hash)); err != nil {
		util.Logger.Fatal("写入初始用户失败", zap.Error(err), zap.String("username", username))
	}
	util.Logger.Info("初始用户就绪", zap.Int("user_id", id), zap.String("username", username))
}
