package commonutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvOverride 在 base 环境变量列表上覆盖指定 key=value，并保证结果中该 key 只出现一次。
func EnvOverride(base []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(base)+1)
	for _, kv := range base {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		out = append(out, kv)
	}
	out = append(out, prefix+value)
	return out
}

// ResolveHardhatDir 定位 hardhat 工程目录：
// - dir 非空时直接校验 dir；
// - 否则依次尝试 ./hardhat-tutorial 与 ../hardhat-tutorial。
func ResolveHardhatDir(dir string) (string, error) {
	candidates := []string{}
	if strings.TrimSpace(dir) != "" {
		candidates = append(candidates, dir)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("获取当前目录失败: %w", err)
		}
		candidates = append(candidates,
			filepath.Join(wd, "hardhat-tutorial"),
			filepath.Join(wd, "..", "hardhat-tutorial"),
		)
	}

	for _, c := range candidates {
		if hasHardhatConfig(c) {
			abs, err := filepath.Abs(c)
			if err != nil {
				return "", fmt.Errorf("解析 hardhat 目录绝对路径失败: %w", err)
			}
			return filepath.Clean(abs), nil
		}
	}
	return "", fmt.Errorf("未找到 hardhat.config.js（候选目录: %v）", candidates)
}

func hasHardhatConfig(dir string) bool {
	for _, name := range []string{"hardhat.config.js", "hardhat.config.ts"} {
		st, err := os.Stat(filepath.Join(dir, name))
		if err == nil && !st.IsDir() {
			return true
		}
	}
	return false
}
