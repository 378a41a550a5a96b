package config

import (
	"os"

	"github.com/gonewx/crimson/pkg/embedded"
)

// readConfigFile 读取配置文件
// 优先从嵌入数据读取（data/ 路径），嵌入数据中不存在时回退到本地文件系统，
// 便于工具和测试使用临时文件。
func readConfigFile(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
