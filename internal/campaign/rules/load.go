package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load 在默认规则之上套用 JSON 覆盖文件（字段可部分给出）。
// path 为空时直接返回默认规则。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return cfg, nil
}
