package util

import (
	"fmt"
	"mime"
	"strconv"
	"strings"
	"time"
)

// GenerateObjectKey 根据内容类型生成唯一的对象存储键
func GenerateObjectKey(prefix, contentType string) string {
	ext := extensionForContentType(contentType)
	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return fmt.Sprintf("%s/%s%s", prefix, timestamp, ext)
}

func extensionForContentType(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err == nil && len(exts) > 0 {
		return exts[0]
	}
	// mime 包不认识时退回到子类型，例如 audio/mpeg -> .mpeg
	if idx := strings.Index(contentType, "/"); idx >= 0 && idx+1 < len(contentType) {
		return "." + contentType[idx+1:]
	}
	return ".bin"
}
