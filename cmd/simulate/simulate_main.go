package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"Cataphract/internal/campaign/rules"
	"Cataphract/internal/campaign/service"
)

// 离线推演工具：读想定 JSON，连续推进 N 天，把每日战报打到标准输出。
// 掷骰由战役状态派生种子，同一想定同样天数必然得到同样的结果。
func main() {
	scenarioPath := flag.String("scenario", "", "想定 JSON 文件路径")
	days := flag.Int("days", 1, "推进的游戏天数")
	rulesPath := flag.String("rules", "", "规则覆盖文件（JSON），为空用默认规则")
	verbose := flag.Bool("verbose", false, "同时输出事件流")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate -scenario <file> [-days N] [-rules <file>] [-verbose]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*scenarioPath)
	if err != nil {
		fatal("read scenario: %v", err)
	}
	c, err := service.CS.ImportScenario(raw)
	if err != nil {
		fatal("import scenario: %v", err)
	}

	cfg := rules.Default()
	if *rulesPath != "" {
		cfg, err = rules.Load(*rulesPath)
		if err != nil {
			fatal("load rules: %v", err)
		}
	}

	eventsBefore := len(c.Events)
	reports := service.CS.AdvanceDays(c, cfg, *days)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, r := range reports {
		if err := enc.Encode(r); err != nil {
			fatal("encode report: %v", err)
		}
	}

	if *verbose {
		for _, e := range c.Events[eventsBefore:] {
			if err := enc.Encode(e); err != nil {
				fatal("encode event: %v", err)
			}
		}
	}

	detail := service.CS.Detail(c, cfg)
	if err := enc.Encode(detail); err != nil {
		fatal("encode detail: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
