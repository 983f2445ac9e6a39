package config

import (
	"os"
	"path/filepath"
)

// Load 加载配置到 out：
// 1) 传入 cfgPath（相对/绝对路径）则优先使用；
// 2) 相对路径找不到时，从当前目录开始向上逐级查找（支持在仓库任意子目录启动）。
func Load(cfgPath string, out any) {
	if cfgPath == "" {
		panic("config path is empty")
	}

	if filepath.IsAbs(cfgPath) {
		load(cfgPath, out)
		return
	}

	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if fileExist(filepath.Join(curDir, cfgPath)) {
		load(filepath.Join(curDir, cfgPath), out)
		return
	}
	load(findConfigUpward(curDir, cfgPath), out)
}

func findConfigUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + relPath + " from: " + startDir)
		}
		dir = parent
	}
}
