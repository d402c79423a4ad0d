package cache

import (
	"context"
	"fmt"
	"time"
)

const settingCacheTTL = 5 * time.Minute

// settingEntry 单个配置键的缓存载体
// Present 用于区分「未配置」与「缓存未命中」
type settingEntry struct {
	Present bool        `json:"present"`
	Value   interface{} `json:"value"`
	Cached  int64       `json:"cached"`
}

func settingKey(key string) string {
	return fmt.Sprintf("setting:%s", key)
}

// GetSetting 读取配置缓存，第二个返回值表示是否命中
func GetSetting(ctx context.Context, key string) (interface{}, bool, error) {
	if key == "" {
		return nil, false, nil
	}
	var entry settingEntry
	hit, err := GetJSON(ctx, settingKey(key), &entry)
	if err != nil || !hit {
		return nil, false, err
	}
	if !entry.Present {
		return nil, true, nil
	}
	return entry.Value, true, nil
}

// SetSetting 写入配置缓存（value 为 nil 表示该键未配置）
func SetSetting(ctx context.Context, key string, value interface{}, present bool) error {
	if key == "" {
		return nil
	}
	entry := settingEntry{
		Present: present,
		Value:   value,
		Cached:  time.Now().Unix(),
	}
	return SetJSON(ctx, settingKey(key), entry, settingCacheTTL)
}

// DelSetting 使配置缓存失效（写入后调用）
func DelSetting(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return Del(ctx, settingKey(key))
}
