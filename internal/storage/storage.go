package storage

// UploadResult 描述一次上传后对象的可访问地址与存储键
type UploadResult struct {
	ObjectURL string
	ObjectKey string
}

// ObjectStorage 抽象对象存储：接收二进制负载与 MIME 类型，返回公开可访问的 URL。
// Delete 用于创建帖子失败时清理已上传的对象。
type ObjectStorage interface {
	UploadBytes(data []byte, contentType, key string) (*UploadResult, error)
	Delete(key string) error
}
