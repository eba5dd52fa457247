package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/user/cinestream/internal/logging"
	"github.com/user/cinestream/internal/repository"
)

var (
	// ErrNotFound 引用的记录不存在
	ErrNotFound = errors.New("not found")
	// ErrConflict 违反唯一性
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized 凭证或令牌无效
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError 输入校验失败，Fields 为字段到错误信息的映射
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// StoreError 存储层失败
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeError 将仓库错误映射为服务层错误
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateEntry):
		return ErrConflict
	}
	logging.Error().Err(err).Str("op", op).Msg("存储操作失败")
	return &StoreError{Op: op, Err: err}
}
