package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	// 内置默认配置生效
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.NotEmpty(t, cfg.JWT.Secret)

	// expire_hours 换算为 ExpireTime
	assert.Greater(t, int64(cfg.JWT.ExpireTime), int64(0))
	assert.Equal(t, cfg, GlobalConfig)
}

func TestLoadConfigBadExternalFile(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	// 指定不存在的外部文件时回退到内置默认配置，不报错
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestSafeErrorMessage(t *testing.T) {
	fallback := "操作失败"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}
