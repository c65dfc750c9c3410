package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"musicshare-backend/internal/util"

	"go.uber.org/zap"
)

// LocalStorage 把对象写到本地磁盘，开发环境使用
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: baseURL}, nil
}

func (s *LocalStorage) UploadBytes(data []byte, contentType, key string) (*UploadResult, error) {
	fullPath := filepath.Join(s.basePath, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("创建目录失败: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	util.Logger.Info("文件上传成功", zap.String("fullPath", fullPath))
	return &UploadResult{
		ObjectURL: fmt.Sprintf("%s/uploads/%s", s.baseURL, key),
		ObjectKey: key,
	}, nil
}

func (s *LocalStorage) Delete(key string) error {
	return os.Remove(filepath.Join(s.basePath, key))
}
