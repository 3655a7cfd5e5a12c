package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/storefront/internal/domain/storage"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// keyPrefix Redis键命名空间
// 逻辑键(cart/userOrders)不变,只在存储层加前缀避免键冲突
const keyPrefix = "storefront:"

// KVStore 基于Redis的本地键值存储
// 实现storage.Store接口,值为JSON字符串,不设过期时间(购物车和订单摘要需要长期保存)
type KVStore struct {
	client *redis.Client
}

var _ storage.Store = (*KVStore)(nil)

// NewKVStore 创建Redis键值存储
func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

// Get 读取键值
// 键不存在时返回空字符串(冷启动场景),不作为错误处理
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", apperrors.WrapCode(apperrors.ErrCodeStorageError, "读取本地存储失败", err)
	}
	return value, nil
}

// Set 写入键值(覆盖语义,不过期)
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageError, "写入本地存储失败", err)
	}
	return nil
}

// Delete 删除键(键不存在时为空操作)
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeStorageError, "删除本地存储失败", err)
	}
	return nil
}
