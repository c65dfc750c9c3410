package util

import (
	"encoding/base64"
	"regexp"
)

// 客户端可能携带 data URI 前缀，例如 data:image/png;base64,xxxx
var dataURIPrefix = regexp.MustCompile(`^data:[a-zA-Z0-9.+-]+/[a-zA-Z0-9.+-]+;base64,`)

// StripDataURIPrefix 去掉 base64 负载中的 data URI 前缀
func StripDataURIPrefix(payload string) string {
	if loc := dataURIPrefix.FindStringIndex(payload); loc != nil {
		return payload[loc[1]:]
	}
	return payload
}

// DecodeBase64Payload 去掉可能存在的前缀后解码 base64 负载
func DecodeBase64Payload(payload string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(StripDataURIPrefix(payload))
}
