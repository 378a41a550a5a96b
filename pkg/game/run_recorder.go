package game

import (
	"errors"
	"fmt"

	"github.com/gonewx/crimson/pkg/ecs"
	"github.com/gonewx/crimson/pkg/modes"
	"github.com/quasilyte/gdata/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// RunRecordingVersion 录像格式版本
const RunRecordingVersion = 2

// ErrRecordingVersion 录像版本不受支持
var ErrRecordingVersion = errors.New("unsupported run recording version")

// ErrRecordingNotFound 录像不存在
var ErrRecordingNotFound = errors.New("run recording not found")

// 录像存储对象名，每个录像是一个属性
const recordingObject = "runs"

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "crimson"

// LastRecordingName 最近一局录像的存储名
const LastRecordingName = "last"

// RunHeader 录像头，包含复现一局所需的全部输入
type RunHeader struct {
	Version int    `msgpack:"v"`
	Mode    string `msgpack:"mode"`
	Mission int    `msgpack:"mission"`
	Loadout string `msgpack:"loadout"`
	Seed    int64  `msgpack:"seed"`
}

// RunGrant 立即生效的输入，选择技能或获得经验，按发生顺序重放
type RunGrant struct {
	Perk       string `msgpack:"p,omitempty"`
	Experience int    `msgpack:"x,omitempty"`
}

// RunFrame 一个 tick 的宿主输入
// 回放顺序：Kills → Grants → Died/Aborted → Update(Dt)；Final 帧没有 Update
type RunFrame struct {
	Tick    uint64     `msgpack:"t"`
	Dt      float64    `msgpack:"dt"`
	Kills   []uint64   `msgpack:"k,omitempty"`
	Grants  []RunGrant `msgpack:"g,omitempty"`
	Died    bool       `msgpack:"d,omitempty"`
	Aborted bool       `msgpack:"a,omitempty"`
	Final   bool       `msgpack:"f,omitempty"`
}

// RunRecording 一局完整录像
type RunRecording struct {
	Header RunHeader     `msgpack:"header"`
	Frames []RunFrame    `msgpack:"frames"`
	Result *modes.Result `msgpack:"result,omitempty"`
}

// RunRecorder 在会话运行时逐帧记录宿主输入
type RunRecorder struct {
	rec     RunRecording
	current RunFrame
}

// NewRunRecorder 以给定录像头创建记录器
func NewRunRecorder(header RunHeader) *RunRecorder {
	header.Version = RunRecordingVersion
	return &RunRecorder{rec: RunRecording{Header: header}}
}

func (r *RunRecorder) kill(id ecs.EntityID) {
	r.current.Kills = append(r.current.Kills, uint64(id))
}

func (r *RunRecorder) perk(id string) {
	r.current.Grants = append(r.current.Grants, RunGrant{Perk: id})
}

func (r *RunRecorder) experience(amount int) {
	r.current.Grants = append(r.current.Grants, RunGrant{Experience: amount})
}

func (r *RunRecorder) died() {
	r.current.Died = true
}

func (r *RunRecorder) aborted() {
	r.current.Aborted = true
}

// commit 结束当前帧
func (r *RunRecorder) commit(tick uint64, dt float64) {
	r.current.Tick = tick
	r.current.Dt = dt
	r.rec.Frames = append(r.rec.Frames, r.current)
	r.current = RunFrame{}
}

// flush 模式结束时把尚未提交的输入记为最后一帧
func (r *RunRecorder) flush(tick uint64) {
	if len(r.current.Kills) == 0 && len(r.current.Grants) == 0 && !r.current.Died && !r.current.Aborted {
		return
	}
	r.current.Final = true
	r.commit(tick, 0)
}

func (r *RunRecorder) finish(result modes.Result) {
	res := result
	r.rec.Result = &res
}

// Recording 返回目前为止的录像
func (r *RunRecorder) Recording() *RunRecording {
	return &r.rec
}

// MarshalRunRecording 将录像编码为 msgpack
func MarshalRunRecording(rec *RunRecording) ([]byte, error) {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run recording: %w", err)
	}
	return data, nil
}

// UnmarshalRunRecording 解码 msgpack 录像并检查版本
func UnmarshalRunRecording(data []byte) (*RunRecording, error) {
	var rec RunRecording
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run recording: %w", err)
	}
	if rec.Header.Version != RunRecordingVersion {
		return nil, fmt.Errorf("recording version %d: %w", rec.Header.Version, ErrRecordingVersion)
	}
	return &rec, nil
}

// SaveRunRecording 将录像保存到 gdata
//
// 参数：
//   - gdataManager: gdata 存储管理器，为 nil 时不保存也不报错
//   - name: 录像名称（作为属性名）
//   - rec: 录像
func SaveRunRecording(gdataManager *gdata.Manager, name string, rec *RunRecording) error {
	if gdataManager == nil {
		return nil
	}
	data, err := MarshalRunRecording(rec)
	if err != nil {
		return err
	}
	if err := gdataManager.SaveObjectProp(recordingObject, name, data); err != nil {
		return fmt.Errorf("failed to save run recording %q: %w", name, err)
	}
	return nil
}

// LoadRunRecording 从 gdata 读取录像
func LoadRunRecording(gdataManager *gdata.Manager, name string) (*RunRecording, error) {
	if gdataManager == nil {
		return nil, fmt.Errorf("failed to load run recording %q: storage unavailable", name)
	}
	if !gdataManager.ObjectPropExists(recordingObject, name) {
		return nil, fmt.Errorf("failed to load run recording %q: %w", name, ErrRecordingNotFound)
	}
	data, err := gdataManager.LoadObjectProp(recordingObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load run recording %q: %w", name, err)
	}
	return UnmarshalRunRecording(data)
}
