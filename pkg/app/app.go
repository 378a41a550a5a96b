// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
	"github.com/gonewx/crimson/pkg/scenes"
	"github.com/gonewx/crimson/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = game.StorageAppName

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Mode 直接进入的模式（quest / survival / rush），为空则显示菜单
	Mode string
	// Mission 任务模式的起始任务索引
	Mission int
	// Loadout Rush 模式装备，为空使用设置中的装备
	Loadout string
	// Seed 随机种子，0 表示使用设置中的种子或当前时间
	Seed int64
	// DataDir 配置目录
	DataDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	saves        *game.SaveManager
	registries   *config.Registries
	storage      *gdata.Manager
	audio        *game.AudioManager
	face         *text.GoTextFace
	seed         int64
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir
	}
	registries, err := config.LoadRegistries(dataDir)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d creatures, %d weapons, %d perks, %d missions",
		len(registries.Creatures.IDs()), len(registries.Weapons.IDs()), len(registries.Perks.IDs()), registries.Quests.Count())

	// gdata 不可用时以降级模式运行（不持久化）
	storage, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v", err)
		storage = nil
	}

	settings := game.NewSettingsManager(storage)
	saves, err := game.NewSaveManager(storage)
	if err != nil {
		log.Printf("[App] Warning: %v (starting with a fresh save)", err)
	}

	// 字体加载失败时退回调试字体
	face, err := utils.NewUIFace(utils.FontSizeHUD)
	if err != nil {
		log.Printf("[App] Warning: %v", err)
		face = nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = settings.GetSettings().Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		saves:        saves,
		registries:   registries,
		storage:      storage,
		audio:        game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settings),
		face:         face,
		seed:         seed,
		verbose:      cfg.Verbose,
	}

	a.sceneManager.SetMenuFactory(func() game.Scene {
		menu := scenes.NewMenuScene(a.sceneManager, registries, saves, settings)
		menu.SetFace(a.face)
		return menu
	})
	a.sceneManager.SetSceneFactory(a.newPlayScene)

	if settings.GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	a.sceneManager.ReturnToMenu()
	if cfg.Mode != "" {
		kind, ok := modes.ParseKind(cfg.Mode)
		if !ok {
			return nil, fmt.Errorf("unknown mode %q (want quest, survival or rush)", cfg.Mode)
		}
		loadout := cfg.Loadout
		if loadout == "" && kind == modes.KindRush {
			loadout = settings.GetSettings().RushLoadout
		}
		if !a.sceneManager.Play(game.ModeRequest{Mode: kind, Mission: cfg.Mission, Loadout: loadout}) {
			return nil, fmt.Errorf("failed to start %s", cfg.Mode)
		}
	}

	log.Printf("[App] Initialized (seed=%d)", seed)
	return a, nil
}

// newPlayScene 为每局创建新的会话，模式开始失败时返回 nil 并留在当前场景
func (a *App) newPlayScene(req game.ModeRequest) game.Scene {
	session := game.NewSession(game.SessionConfig{
		Registries: a.registries,
		Seed:       a.seed,
		Saves:      a.saves,
		Record:     true,
	})
	if err := session.Start(req.Mode, req.Mission, req.Loadout); err != nil {
		log.Printf("[App] Failed to start %s: %v", req.Mode, err)
		return nil
	}
	// 下一局使用新的种子
	a.seed++

	return scenes.NewPlayScene(a.sceneManager, session, scenes.PlayOptions{
		ShowDebug: a.settings.GetSettings().ShowDebugOverlay,
		Storage:   a.storage,
		Audio:     a.audio,
		Face:      a.face,
	})
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) && !utils.IsMobile() {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	// F3 切换调试信息（下一局生效）
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s := a.settings.GetSettings()
		a.settings.SetShowDebugOverlay(!s.ShowDebugOverlay)
	}

	// F9 切换音效
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s := a.settings.GetSettings()
		a.settings.SetSoundEnabled(!s.SoundEnabled)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Shutdown 保存当前场景与设置
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: current scene failed to save")
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
