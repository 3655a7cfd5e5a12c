package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/storefront/internal/domain/storage"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// KVStore 基于MySQL的本地键值存储
// 实现storage.Store接口,与Redis实现按配置(storage.driver)二选一
type KVStore struct {
	db *gorm.DB
}

var _ storage.Store = (*KVStore)(nil)

// NewKVStore 创建MySQL键值存储
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get 读取键值
// 键不存在时返回空字符串(冷启动场景),不作为错误处理
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var model KVModel
	err := s.db.WithContext(ctx).First(&model, "`key` = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperrors.WrapCode(apperrors.ErrCodeStorageError, "读取本地存储失败", err)
	}
	return model.Value, nil
}

// Set 写入键值(upsert语义)
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	model := KVModel{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageError, "写入本地存储失败", err)
	}
	return nil
}

// Delete 删除键(键不存在时为空操作)
func (s *KVStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&KVModel{}, "`key` = ?", key).Error
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageError, "删除本地存储失败", err)
	}
	return nil
}
