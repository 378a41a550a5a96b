package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// SoundCue 音效标识
type SoundCue string

const (
	CuePickup   SoundCue = "pickup"    // 武器掉落
	CuePerk     SoundCue = "perk"      // 升级待选技能
	CueWave     SoundCue = "wave"      // 新波次开始
	CueScore    SoundCue = "score"     // Rush 得分
	CueGameOver SoundCue = "game_over" // 模式结束
)

// tone 合成音效参数
type tone struct {
	freq    float64 // 起始频率 Hz
	slide   float64 // 结束频率相对起始频率的倍数
	seconds float64
}

var cueTones = map[SoundCue]tone{
	CuePickup:   {freq: 660, slide: 1.5, seconds: 0.12},
	CuePerk:     {freq: 520, slide: 2, seconds: 0.3},
	CueWave:     {freq: 220, slide: 1, seconds: 0.4},
	CueScore:    {freq: 880, slide: 1.1, seconds: 0.05},
	CueGameOver: {freq: 330, slide: 0.5, seconds: 0.8},
}

// AudioManager 音效管理器
// 所有音效在首次播放时合成并缓存，音量与开关从 SettingsManager 读取
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	players         map[SoundCue]*audio.Player
}

// NewAudioManager 创建新的音效管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（静音模式，例如无声卡的测试环境）
//   - sm: SettingsManager 实例，可为 nil（始终使用默认音量）
//
// 返回：
//   - *AudioManager: 音效管理器实例
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[SoundCue]*audio.Player),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否实际播放（静音模式、音效关闭或未知音效返回 false）
func (am *AudioManager) PlaySound(cue SoundCue) bool {
	if am == nil || am.context == nil {
		return false
	}

	volume := DefaultSettings().SoundVolume
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		volume = settings.SoundVolume
	}

	player := am.getPlayer(cue)
	if player == nil {
		return false
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Failed to rewind %s: %v", cue, err)
		return false
	}
	player.Play()
	return true
}

func (am *AudioManager) getPlayer(cue SoundCue) *audio.Player {
	if player, ok := am.players[cue]; ok {
		return player
	}

	t, ok := cueTones[cue]
	if !ok {
		log.Printf("[AudioManager] Unknown sound cue: %s", cue)
		return nil
	}

	player := am.context.NewPlayerFromBytes(SynthesizeTone(am.context.SampleRate(), t.freq, t.slide, t.seconds))
	am.players[cue] = player
	return player
}

// SynthesizeTone 合成一段带线性衰减包络的正弦扫频音
// 输出为 16 位小端立体声 PCM，可直接交给 audio.Context 播放
//
// 参数：
//
//	sampleRate - 采样率
//	freq - 起始频率 Hz
//	slide - 结束频率相对起始频率的倍数，1 表示不变调
//	seconds - 时长
func SynthesizeTone(sampleRate int, freq, slide, seconds float64) []byte {
	n := int(float64(sampleRate) * seconds)
	if n <= 0 {
		return nil
	}

	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		f := freq * (1 + (slide-1)*progress)
		phase += 2 * math.Pi * f / float64(sampleRate)
		envelope := 1 - progress
		v := int16(math.Sin(phase) * envelope * 0.5 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
