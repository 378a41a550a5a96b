package scenes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
	"github.com/gonewx/crimson/pkg/utils"
)

var colorMenuBackground = color.RGBA{R: 40, G: 10, B: 10, A: 255}

// menuModes 菜单中的模式顺序
var menuModes = []modes.Kind{modes.KindQuest, modes.KindSurvival, modes.KindRush}

// MenuScene 模式选择菜单
//
// 上下选择模式，左右选择任务（仅已解锁）或 Rush 装备，回车开始。
type MenuScene struct {
	sceneManager *game.SceneManager
	registries   *config.Registries
	saves        *game.SaveManager
	settings     *game.SettingsManager
	face         *text.GoTextFace

	selected int
	mission  int
	loadout  int
}

// NewMenuScene 创建菜单场景
func NewMenuScene(sm *game.SceneManager, reg *config.Registries, saves *game.SaveManager, settings *game.SettingsManager) *MenuScene {
	m := &MenuScene{
		sceneManager: sm,
		registries:   reg,
		saves:        saves,
		settings:     settings,
	}
	// 默认选中上次使用的 Rush 装备
	if name := settings.GetSettings().RushLoadout; name != "" {
		for i, l := range reg.Modes.Rush.Loadouts {
			if l.Name == name {
				m.loadout = i
			}
		}
	}
	m.mission = m.unlockedMissions() - 1
	return m
}

// SetFace 设置菜单字体，nil 时使用调试字体
func (m *MenuScene) SetFace(face *text.GoTextFace) {
	m.face = face
}

// unlockedMissions 可选择的任务数量
func (m *MenuScene) unlockedMissions() int {
	n := m.saves.GetData().UnlockedMissions
	if total := m.registries.Quests.Count(); n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Selected 返回当前选择
func (m *MenuScene) Selected() game.ModeRequest {
	req := game.ModeRequest{Mode: menuModes[m.selected]}
	switch req.Mode {
	case modes.KindQuest:
		req.Mission = m.mission
	case modes.KindRush:
		req.Loadout = m.registries.Modes.Rush.Loadouts[m.loadout].Name
	}
	return req
}

// Move 移动选择，dy 切换模式，dx 切换任务或装备
func (m *MenuScene) Move(dx, dy int) {
	m.selected = wrap(m.selected+dy, len(menuModes))
	switch menuModes[m.selected] {
	case modes.KindQuest:
		m.mission = wrap(m.mission+dx, m.unlockedMissions())
	case modes.KindRush:
		m.loadout = wrap(m.loadout+dx, len(m.registries.Modes.Rush.Loadouts))
	}
}

// Confirm 开始当前选择的模式
func (m *MenuScene) Confirm() bool {
	req := m.Selected()
	if req.Mode == modes.KindRush {
		m.settings.SetRushLoadout(req.Loadout)
	}
	return m.sceneManager.Play(req)
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// Update 处理菜单输入
func (m *MenuScene) Update(deltaTime float64) {
	dx, dy := utils.MenuDelta()
	if dx != 0 || dy != 0 {
		m.Move(dx, dy)
	}
	if utils.IsConfirmJustPressed() {
		m.Confirm()
	}
}

// Lines 返回菜单文字
func (m *MenuScene) Lines() []string {
	data := m.saves.GetData()
	lines := []string{"CRIMSON", ""}
	for i, kind := range menuModes {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		var detail string
		switch kind {
		case modes.KindQuest:
			mission, err := m.registries.Quests.Mission(m.mission)
			if err == nil {
				detail = fmt.Sprintf("< %s %s >  (%d/%d unlocked)", mission.ID, mission.Name, m.unlockedMissions(), m.registries.Quests.Count())
			}
		case modes.KindSurvival:
			detail = fmt.Sprintf("best %.1fs, %d kills, level %d", data.Survival.BestTime, data.Survival.BestKills, data.Survival.BestLevel)
		case modes.KindRush:
			l := m.registries.Modes.Rush.Loadouts[m.loadout]
			detail = fmt.Sprintf("< %s: %s >  best score %d", l.Name, l.Weapon, data.Rush.BestScore)
		}
		lines = append(lines, fmt.Sprintf("%s%-9s %s", cursor, strings.ToUpper(kind.String()), detail))
	}
	lines = append(lines, "", menuHint())
	return lines
}

// Draw 绘制菜单
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorMenuBackground)
	utils.DrawText(screen, strings.Join(m.Lines(), "\n"), m.face, 80, 120, color.White)
}

func menuHint() string {
	if utils.IsMobile() {
		return "Tap to start"
	}
	return "Arrows/WASD select, Enter start, F11 fullscreen"
}

func returnHint() string {
	if utils.IsMobile() {
		return "Tap to return to the menu"
	}
	return "Press Enter to return to the menu"
}
