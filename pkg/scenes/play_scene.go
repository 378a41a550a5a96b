package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/ecs"
	"github.com/gonewx/crimson/pkg/events"
	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
	"github.com/gonewx/crimson/pkg/utils"
)

var (
	colorBackground = color.RGBA{R: 24, G: 20, B: 18, A: 255}
	colorHUD        = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	colorPlayer     = color.RGBA{R: 90, G: 200, B: 230, A: 255}
	colorCreature   = color.RGBA{R: 190, G: 40, B: 40, A: 255}
	colorBoss       = color.RGBA{R: 150, G: 30, B: 160, A: 255}
	colorHealthBar  = color.RGBA{R: 60, G: 220, B: 60, A: 255}
	colorPickup     = color.RGBA{R: 240, G: 200, B: 40, A: 255}
	colorHealthDrop = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	colorExpDrop    = color.RGBA{R: 240, G: 240, B: 60, A: 255}
	colorEffectDrop = color.RGBA{R: 60, G: 180, B: 255, A: 255}
	colorDifficulty = color.RGBA{R: 220, G: 90, B: 40, A: 255}
	colorShot       = color.RGBA{R: 255, G: 240, B: 160, A: 255}
)

// PlayOptions 对局场景选项
type PlayOptions struct {
	ShowDebug bool               // 显示调试信息
	Storage   *gdata.Manager     // 录像存储，可为 nil
	Audio     *game.AudioManager // 音效，可为 nil
	Face      *text.GoTextFace   // HUD 字体，nil 时使用调试字体
}

// PlayScene 对局场景
// 持有一个已开始的会话，将键盘输入交给 Arena 并绘制场地与 HUD
type PlayScene struct {
	sceneManager *game.SceneManager
	arena        *Arena
	opts         PlayOptions
	paused       bool
	saved        bool
}

// NewPlayScene 创建对局场景
//
// 参数：
//   - sm: 场景管理器，对局结束后用于返回菜单
//   - session: 已调用 Start 的会话
//   - opts: 场景选项
func NewPlayScene(sm *game.SceneManager, session *game.Session, opts PlayOptions) *PlayScene {
	s := &PlayScene{
		sceneManager: sm,
		arena:        NewArena(session),
		opts:         opts,
	}

	d := session.Dispatcher()
	for _, t := range []events.Type{
		events.TypePickupRequested, events.TypePerkOffered, events.TypeWaveStarted,
		events.TypeScoreChanged, events.TypeModeTransitioned,
	} {
		d.Subscribe(t, events.ListenerFunc(s.onSoundEvent))
	}
	return s
}

func (s *PlayScene) onSoundEvent(e events.Event) {
	if cue, ok := soundCueFor(e); ok {
		s.opts.Audio.PlaySound(cue)
	}
}

// soundCueFor 将会话事件映射为音效
func soundCueFor(e events.Event) (game.SoundCue, bool) {
	switch ev := e.(type) {
	case events.PickupRequested:
		return game.CuePickup, true
	case events.PerkOffered:
		return game.CuePerk, true
	case events.WaveStarted:
		return game.CueWave, true
	case events.ScoreChanged:
		return game.CueScore, ev.Delta > 0
	case events.ModeTransitioned:
		return game.CueGameOver, ev.To == modes.KindEnded.String()
	}
	return "", false
}

// Arena 返回场地
func (s *PlayScene) Arena() *Arena {
	return s.arena
}

// Update 处理输入并推进一个 tick
func (s *PlayScene) Update(deltaTime float64) {
	session := s.arena.Session()

	if !session.Running() {
		s.storeRecording()
		if utils.IsConfirmJustPressed() || utils.IsBackJustPressed() {
			s.sceneManager.ReturnToMenu()
		}
		return
	}

	if utils.IsBackJustPressed() {
		if err := session.Abort(); err != nil {
			log.Printf("[PlayScene] Abort failed: %v", err)
		}
		return
	}
	if utils.IsPauseJustPressed() {
		s.paused = !s.paused
	}
	if s.paused {
		return
	}

	if i := utils.ChoiceJustPressed(len(s.arena.PerkChoices)); i >= 0 {
		if err := s.arena.ChoosePerk(i); err != nil {
			log.Printf("[PlayScene] Perk choice failed: %v", err)
		}
	}

	moveX, moveY := utils.MoveAxis(s.arena.PlayerX, s.arena.PlayerY)
	if err := s.arena.Step(deltaTime, moveX, moveY); err != nil {
		log.Printf("[PlayScene] Tick error: %v", err)
	}
}

// storeRecording 对局结束后保存一次录像
func (s *PlayScene) storeRecording() {
	if s.saved {
		return
	}
	s.saved = true
	rec := s.arena.Session().Recording()
	if rec == nil {
		return
	}
	if err := game.SaveRunRecording(s.opts.Storage, game.LastRecordingName, rec); err != nil {
		log.Printf("[PlayScene] Failed to store recording: %v", err)
	}
}

// SaveOnExit 窗口关闭时中止进行中的模式，使结果写入存档
func (s *PlayScene) SaveOnExit() bool {
	session := s.arena.Session()
	if session.Running() {
		if err := session.Abort(); err != nil {
			log.Printf("[PlayScene] Abort on exit failed: %v", err)
			return false
		}
	}
	s.storeRecording()
	return true
}

// Draw 绘制场地、生物、玩家与 HUD
func (s *PlayScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a := s.arena
	em := a.Session().Entities()

	for _, p := range a.Pickups {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(config.PickupRadius/2), pickupColor(p.Bonus), true)
	}

	for _, id := range a.Session().Creatures() {
		s.drawCreature(screen, em, id)
	}

	for _, shot := range a.Shots {
		vector.StrokeLine(screen, float32(shot.FromX), float32(shot.FromY), float32(shot.ToX), float32(shot.ToY), 1, colorShot, true)
	}

	vector.DrawFilledCircle(screen, float32(a.PlayerX), float32(a.PlayerY), float32(config.PlayerRadius), colorPlayer, true)

	s.drawHUD(screen)
	if result := a.Session().LastResult(); result != nil {
		s.drawResult(screen, result)
	}
}

// pickupColor 按掉落物种类区分颜色
func pickupColor(kind config.BonusKind) color.Color {
	switch kind {
	case config.BonusWeapon:
		return colorPickup
	case config.BonusSmallHealth, config.BonusLargeHealth, config.BonusFullHealth:
		return colorHealthDrop
	case config.BonusSmallExp, config.BonusLargeExp:
		return colorExpDrop
	}
	return colorEffectDrop
}

// effectsLine 持续中的掉落物效果，按固定顺序列出剩余秒数
func effectsLine(effects map[config.BonusKind]float64) string {
	var parts []string
	for _, b := range config.Bonuses() {
		if left := effects[b.Kind]; left > 0 {
			parts = append(parts, fmt.Sprintf("%s %.0fs", b.Name, left))
		}
	}
	return strings.Join(parts, "  ")
}

func (s *PlayScene) drawCreature(screen *ebiten.Image, em *ecs.EntityManager, id ecs.EntityID) {
	creature, _ := ecs.GetComponent[*components.CreatureComponent](em, id)
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return
	}
	radius := config.CreatureRadiusFor(creature.Toughness)
	clr := colorCreature
	if creature.Toughness >= config.MaxToughness {
		clr = colorBoss
	}
	vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(radius), clr, true)

	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if ok && health.MaxHealth > 0 && health.CurrentHealth < health.MaxHealth {
		w := float32(radius * 2 * health.CurrentHealth / health.MaxHealth)
		vector.DrawFilledRect(screen, float32(pos.X-radius), float32(pos.Y-radius-5), w, 3, colorHealthBar, false)
	}
}

func (s *PlayScene) drawHUD(screen *ebiten.Image) {
	a := s.arena
	session := a.Session()
	vector.DrawFilledRect(screen, 0, 0, float32(config.GameWindowWidth), float32(config.HUDHeight), colorHUD, false)

	var status string
	switch st := session.State().(type) {
	case *modes.QuestState:
		status = fmt.Sprintf("QUEST %s  mission %d/%d  killed %d/%d",
			st.Objectives.MissionID, st.MissionIndex()+1, st.Objectives.FinalIndex+1,
			st.Progress.Killed, st.Objectives.KillTarget)
		if st.Objectives.TimeLimit > 0 {
			status += fmt.Sprintf("  time %.0f", st.Objectives.TimeLimit-st.Progress.Elapsed)
		}
	case *modes.SurvivalState:
		status = fmt.Sprintf("SURVIVAL  %.1fs  kills %d  level %d  xp %d/%d",
			st.Wave.Elapsed, st.Kills, st.Experience.Level, st.Experience.Experience, st.Experience.ToNext)
	case *modes.RushState:
		status = fmt.Sprintf("RUSH  %.1fs left  score %d  streak %d  x%.1f",
			st.Remaining(), st.Streak.Score, st.Streak.Streak, st.Streak.Multiplier)
	default:
		status = strings.ToUpper(session.State().Kind().String())
	}

	ammo := "inf"
	if a.Weapon.AmmoCapacity > 0 {
		ammo = fmt.Sprintf("%d/%d", a.Ammo, a.Weapon.AmmoCapacity)
	}
	face := s.opts.Face
	utils.DrawText(screen, status, face, 10, 4, color.White)
	line := fmt.Sprintf("HP %.0f/%.0f  %s [%s]", a.PlayerHealth, a.MaxHealth(), a.Weapon.Name, ammo)
	if effects := effectsLine(a.Effects); effects != "" {
		line += "  " + effects
	}
	utils.DrawText(screen, line, face, 10, 4+utils.LineHeight(face), color.White)

	if _, normalized, ok := session.Difficulty(); ok {
		const barWidth = 120
		x := float32(config.GameWindowWidth - barWidth - 10)
		vector.StrokeRect(screen, x, 8, barWidth, 8, 1, color.White, false)
		vector.DrawFilledRect(screen, x, 8, float32(barWidth*normalized), 8, colorDifficulty, false)
	}

	if len(a.PerkChoices) > 0 {
		lines := []string{"Choose a perk:"}
		for i, id := range a.PerkChoices {
			name := id
			if perk, err := session.Registries().Perk(id); err == nil {
				name = perk.Name
			}
			lines = append(lines, fmt.Sprintf("[%d] %s", i+1, name))
		}
		utils.DrawText(screen, strings.Join(lines, "\n"), face, 10, config.HUDHeight+10, colorPickup)
	}

	if a.Banner != "" {
		w, _ := utils.MeasureText(a.Banner, face)
		utils.DrawText(screen, a.Banner, face, (config.GameWindowWidth-w)/2, config.HUDHeight+10, color.White)
	}
	if s.paused {
		w, _ := utils.MeasureText("PAUSED", face)
		utils.DrawText(screen, "PAUSED", face, (config.GameWindowWidth-w)/2, config.GameWindowHeight/2, color.White)
	}

	if s.opts.ShowDebug {
		debug := fmt.Sprintf("TPS %.0f  tick %d  seed %d  creatures %d",
			ebiten.ActualTPS(), session.Tick(), session.Seed(), session.ActiveCreatures())
		ebitenutil.DebugPrintAt(screen, debug, config.GameWindowWidth-340, 6)
	}
}

func (s *PlayScene) drawResult(screen *ebiten.Image, r *modes.Result) {
	lines := []string{
		fmt.Sprintf("%s - %s", strings.ToUpper(r.Mode.String()), r.Outcome),
		fmt.Sprintf("Time: %.1fs", r.Time),
		fmt.Sprintf("Kills: %d", r.Kills),
	}
	switch r.Mode {
	case modes.KindQuest:
		lines = append(lines, fmt.Sprintf("Missions completed: %d", r.MissionsCompleted))
	case modes.KindSurvival:
		lines = append(lines, fmt.Sprintf("Level: %d", r.Level))
	case modes.KindRush:
		lines = append(lines, fmt.Sprintf("Score: %d", r.Score))
	}
	lines = append(lines, "", returnHint())

	lineHeight := utils.LineHeight(s.opts.Face)
	x := float64(config.GameWindowWidth/2 - 150)
	y := float64(config.GameWindowHeight/2 - 60)
	vector.DrawFilledRect(screen, float32(x-10), float32(y-10), 320, float32(float64(len(lines))*lineHeight+20), colorHUD, false)
	utils.DrawText(screen, strings.Join(lines, "\n"), s.opts.Face, x, y, color.White)
}
