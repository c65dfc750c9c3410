package util

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateImageType 验证字段是否为 image/* 类型
func ValidateImageType(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(value, "image/")
}

// ValidateAudioType 验证字段是否为 audio/* 类型
func ValidateAudioType(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return value == "" || strings.HasPrefix(value, "audio/")
}
