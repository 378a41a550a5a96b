package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/crimson/pkg/app"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	mode    = flag.String("mode", "", "直接进入模式: quest / survival / rush")
	mission = flag.Int("mission", 0, "任务模式起始任务索引")
	loadout = flag.String("loadout", "", "Rush 模式装备名称")
	seed    = flag.Int64("seed", 0, "随机种子（0 表示使用设置或当前时间）")
)

func main() {
	flag.Parse()

	// 初始化嵌入的配置文件
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Mode:    *mode,
		Mission: *mission,
		Loadout: *loadout,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Crimson")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
