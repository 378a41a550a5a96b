// simulate 无窗口运行一局，输出结果摘要
//
// 用法:
//
//	go run ./cmd/simulate -mode rush -seed 7 -kill-rate 3
//	go run ./cmd/simulate -mode survival -seconds 300 -die-at 240 -record run.msgpack
//	go run ./cmd/simulate -replay run.msgpack
//	go run ./cmd/simulate -replay-name last
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
	"github.com/quasilyte/gdata/v2"
)

const tickRate = 60

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	dataDir  = flag.String("data", config.DefaultDataDir, "配置目录")
	modeName = flag.String("mode", "survival", "模式: quest / survival / rush")
	mission  = flag.Int("mission", 0, "任务模式起始任务索引")
	loadout  = flag.String("loadout", "", "Rush 模式装备名称")
	seconds  = flag.Float64("seconds", 600, "最长模拟时间（秒），到时仍未结束则中止")
	killRate = flag.Float64("kill-rate", 2, "每秒击杀数")
	dieAt    = flag.Float64("die-at", 0, "玩家在该时间死亡（秒，0 表示不死亡）")
	seed     = flag.Int64("seed", 1, "随机种子")
	record   = flag.String("record", "", "将录像写入该文件（msgpack）")
	replay   = flag.String("replay", "", "回放录像文件而不是模拟")
	replayID = flag.String("replay-name", "", "回放游戏保存在 gdata 中的录像（如 last）")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	reg, err := config.LoadRegistries(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	if *replayID != "" {
		if err := runStoredReplay(reg, *replayID); err != nil {
			fmt.Fprintf(os.Stderr, "回放失败: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *replay != "" {
		if err := runReplay(reg, *replay); err != nil {
			fmt.Fprintf(os.Stderr, "回放失败: %v\n", err)
			os.Exit(1)
		}
		return
	}

	kind, ok := modes.ParseKind(*modeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "未知模式 %q\n", *modeName)
		os.Exit(2)
	}

	session, err := simulate(reg, kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "模拟失败: %v\n", err)
		os.Exit(1)
	}
	printResult(session.LastResult())

	if *record != "" {
		data, err := game.MarshalRunRecording(session.Recording())
		if err != nil {
			fmt.Fprintf(os.Stderr, "录像编码失败: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*record, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "录像写入失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("录像已写入 %s (%d 帧, %d 字节)\n", *record, len(session.Recording().Frames), len(data))
	}
}

// simulate 以固定步长运行一局，按击杀率击杀编号最小的生物
func simulate(reg *config.Registries, kind modes.Kind) (*game.Session, error) {
	session := game.NewSession(game.SessionConfig{Registries: reg, Seed: *seed, Record: true})

	var offers [][]string
	session.Dispatcher().Subscribe(events.TypePerkOffered, events.ListenerFunc(func(e events.Event) {
		offers = append(offers, e.(events.PerkOffered).Choices)
	}))
	transitions := 0
	session.Dispatcher().Subscribe(events.TypeModeTransitioned, events.ListenerFunc(func(e events.Event) {
		transitions++
	}))

	if err := session.Start(kind, *mission, *loadout); err != nil {
		return nil, err
	}

	dt := 1.0 / tickRate
	maxTicks := uint64(*seconds * tickRate)
	deathTick := uint64(*dieAt * tickRate)
	budget := 0.0

	for session.Running() && session.Tick() < maxTicks {
		budget += *killRate * dt
		for _, id := range session.Creatures() {
			if budget < 1 {
				break
			}
			if err := session.Kill(id); err != nil {
				return nil, err
			}
			budget--
		}

		if len(offers) > 0 {
			if err := session.ChoosePerk(offers[0][0]); err != nil {
				return nil, err
			}
			offers = offers[1:]
		}

		if deathTick > 0 && session.Tick() >= deathTick {
			if err := session.PlayerDied(); err != nil {
				return nil, err
			}
			break
		}

		if err := session.Update(dt); err != nil {
			fmt.Fprintf(os.Stderr, "tick %d: %v\n", session.Tick(), err)
		}
	}

	if session.Running() {
		if err := session.Abort(); err != nil {
			return nil, err
		}
	}
	fmt.Printf("模式迁移 %d 次\n", transitions)
	return session, nil
}

func runReplay(reg *config.Registries, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rec, err := game.UnmarshalRunRecording(data)
	if err != nil {
		return err
	}
	return verifyReplay(reg, rec)
}

// runStoredReplay 回放游戏保存在 gdata 中的录像
func runStoredReplay(reg *config.Registries, name string) error {
	storage, err := gdata.Open(gdata.Config{AppName: game.StorageAppName})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	rec, err := game.LoadRunRecording(storage, name)
	if err != nil {
		return err
	}
	return verifyReplay(reg, rec)
}

func verifyReplay(reg *config.Registries, rec *game.RunRecording) error {
	result, err := game.Replay(reg, rec)
	if err != nil {
		return err
	}
	printResult(result)

	if rec.Result != nil && *rec.Result != *result {
		return fmt.Errorf("回放结果与录像不一致: 录像 %+v", *rec.Result)
	}
	fmt.Println("回放结果与录像一致")
	return nil
}

func printResult(r *modes.Result) {
	if r == nil {
		fmt.Println("模式未结束")
		return
	}
	fmt.Printf("模式: %s\n结果: %s (%s)\n", r.Mode, r.Outcome, r.Trigger)
	fmt.Printf("时间: %.2fs\n击杀: %d\n", r.Time, r.Kills)
	switch r.Mode {
	case modes.KindQuest:
		fmt.Printf("完成任务: %d (结束于任务 %d)\n", r.MissionsCompleted, r.MissionIndex)
	case modes.KindSurvival:
		fmt.Printf("等级: %d\n", r.Level)
	case modes.KindRush:
		fmt.Printf("得分: %d\n", r.Score)
	}
}
