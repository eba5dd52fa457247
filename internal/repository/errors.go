package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateEntry 违反唯一约束
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// translate 将 gorm 错误转换为仓库层错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEntry
	}
	return err
}
