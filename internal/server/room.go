package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"bomberman/pkg/ai"
	"bomberman/pkg/audio"
	"bomberman/pkg/core"
	"bomberman/pkg/phase"
	"bomberman/pkg/protocol"
)

var (
	ErrRoomFull   = errors.New("房间已满")
	ErrRoomClosed = errors.New("房间已关闭")
)

// RoomOptions 每个房间阶段机的参数
type RoomOptions struct {
	Specs     []core.StageSpec
	ConfigErr error
	Seed      int64
	// Demo 主菜单提供自动演示
	Demo bool
}

type member struct {
	session   Session
	name      string
	spectator bool
}

// Room 一个房间运行一台阶段机；先加入者操控角色，其余为观众
type Room struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	machine *phase.Machine
	sound   *audio.Recorder
	frameID uint32

	keys    phase.KeySet // 操控者最新的按键状态
	latched phase.KeySet // 两帧之间出现过的按键，避免短按丢失

	members      map[int32]*member
	controller   int32 // 0 表示无人操控
	nextPlayerID int32
	idleSince    time.Time

	stats atomic.Pointer[RoomStats]

	joinCh  chan joinRequest
	inputCh chan InputEvent
	leaveCh chan leaveRequest
}

type leaveRequest struct {
	playerID int32
	session  Session
}

type joinRequest struct {
	session Session
	name    string
	reclaim int32 // 重连时沿用的玩家 ID，0 表示新玩家
	respCh  chan error
}

// RoomStats 房间统计信息
type RoomStats struct {
	ID         string    `json:"id"`
	Players    int       `json:"players"`
	Spectators int       `json:"spectators"`
	Controller int32     `json:"controller"`
	Phase      string    `json:"phase"`
	FrameID    uint32    `json:"frame_id"`
	Stage      int       `json:"stage"`
	Score      int       `json:"score"`
	IdleSince  time.Time `json:"idle_since"`
}

// NewRoom 创建房间
func NewRoom(parent context.Context, id string, opts RoomOptions) *Room {
	ctx, cancel := context.WithCancel(parent)

	sound := &audio.Recorder{}
	machineOpts := phase.Options{
		Specs:     opts.Specs,
		ConfigErr: opts.ConfigErr,
		Seed:      opts.Seed,
		Audio:     sound,
	}
	if opts.Demo {
		machineOpts.Demo = ai.NewAutopilot(opts.Seed, nil)
	}

	r := &Room{
		id:           id,
		ctx:          ctx,
		cancel:       cancel,
		machine:      phase.NewMachine(machineOpts),
		sound:        sound,
		members:      make(map[int32]*member),
		nextPlayerID: 1,
		idleSince:    time.Now(),
		joinCh:       make(chan joinRequest),
		inputCh:      make(chan InputEvent, 256),
		leaveCh:      make(chan leaveRequest, 16),
	}
	r.publishStats()
	return r
}

// ID 房间 ID
func (r *Room) ID() string {
	return r.id
}

// Run 房间主循环，所有房间状态只在此协程中修改
func (r *Room) Run(wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	log.Printf("房间 %s 循环启动: %d TPS", r.id, ServerTPS)

	for {
		select {
		case <-r.ctx.Done():
			r.closeAllConnections()
			log.Printf("房间 %s 循环停止", r.id)
			return

		case req := <-r.joinCh:
			req.respCh <- r.handleJoin(req)

		case ev := <-r.inputCh:
			r.handleInput(ev)

		case req := <-r.leaveCh:
			r.handleLeave(req)

		case <-ticker.C:
			r.tick()
		}
	}
}

// Shutdown 关闭房间
func (r *Room) Shutdown() {
	r.cancel()
}

// Join 加入房间；reclaim 非 0 时以原玩家 ID 重连
func (r *Room) Join(session Session, name string, reclaim int32) error {
	respCh := make(chan error, 1)

	select {
	case <-r.ctx.Done():
		return ErrRoomClosed
	case r.joinCh <- joinRequest{session: session, name: name, reclaim: reclaim, respCh: respCh}:
	}

	select {
	case <-r.ctx.Done():
		return ErrRoomClosed
	case err := <-respCh:
		return err
	}
}

// EnqueueInput 投递操控者的按键状态
func (r *Room) EnqueueInput(ev InputEvent) {
	select {
	case <-r.ctx.Done():
	case r.inputCh <- ev:
	}
}

// Leave 玩家离开；session 用于识别已被重连替换的旧连接
func (r *Room) Leave(playerID int32, session Session) {
	select {
	case <-r.ctx.Done():
	case r.leaveCh <- leaveRequest{playerID: playerID, session: session}:
	}
}

// Stats 最近一次发布的统计信息，可在任意协程读取
func (r *Room) Stats() RoomStats {
	return *r.stats.Load()
}

func (r *Room) handleJoin(req joinRequest) error {
	playerID := req.reclaim
	if playerID != 0 {
		if playerID < 0 || playerID >= r.nextPlayerID {
			return ErrInvalidToken
		}
		if old, ok := r.members[playerID]; ok {
			// 旧连接可能还没检测到断线
			old.session.CloseWithoutNotify()
			delete(r.members, playerID)
		}
	}

	if len(r.members) >= MaxPlayers {
		return fmt.Errorf("%w (%d/%d)", ErrRoomFull, len(r.members), MaxPlayers)
	}

	if playerID == 0 {
		playerID = r.nextPlayerID
		r.nextPlayerID++
	}

	token, err := GenerateSessionToken(playerID, r.id)
	if err != nil {
		return fmt.Errorf("生成会话令牌失败: %w", err)
	}

	spectator := r.controller != 0 && r.controller != playerID
	resp := protocol.JoinResponse{
		Success:      true,
		PlayerID:     playerID,
		RoomID:       r.id,
		SessionToken: token,
		Spectator:    spectator,
		TPS:          ServerTPS,
	}
	if err := req.session.Send(protocol.NewJoinResponsePacket(resp)); err != nil {
		return fmt.Errorf("发送加入响应失败: %w", err)
	}

	req.session.SetPlayerID(playerID)
	req.session.SetRoomID(r.id)
	r.members[playerID] = &member{session: req.session, name: req.name, spectator: spectator}
	if !spectator {
		r.controller = playerID
		r.keys, r.latched = 0, 0
	}

	role := "操控者"
	if spectator {
		role = "观众"
	}
	log.Printf("房间 %s: 玩家 %d (%s) 以%s身份加入，当前人数: %d", r.id, playerID, req.name, role, len(r.members))

	r.publishStats()
	return nil
}

func (r *Room) handleInput(ev InputEvent) {
	if ev.PlayerID == 0 || ev.PlayerID != r.controller {
		return
	}
	r.keys = ev.Keys
	r.latched |= ev.Keys
}

func (r *Room) handleLeave(req leaveRequest) {
	playerID := req.playerID
	m, ok := r.members[playerID]
	if !ok || (req.session != nil && m.session != req.session) {
		return
	}
	delete(r.members, playerID)

	if playerID == r.controller {
		r.controller = 0
		r.keys, r.latched = 0, 0
		// 操控者掉线时暂停，等待重连
		r.machine.Dispatch(phase.EventPause)
	}

	log.Printf("房间 %s: 玩家 %d 离开，当前人数: %d", r.id, playerID, len(r.members))
	r.publishStats()
}

func (r *Room) tick() {
	// 无人时冻结，阶段机时钟不前进
	if len(r.members) == 0 {
		return
	}

	r.machine.Tick(r.keys | r.latched)
	r.latched = 0
	r.frameID++

	msg := protocol.FrameMessage{
		ID:      r.frameID,
		Frame:   r.machine.Frame(),
		Effects: r.sound.Drain(),
		Music:   r.sound.Cue,
	}
	r.broadcast(protocol.NewFramePacket(msg))
	r.publishStats()
}

func (r *Room) broadcast(data []byte) {
	for id, m := range r.members {
		if err := m.session.Send(data); err != nil && !errors.Is(err, ErrSendQueueFull) {
			log.Printf("房间 %s: 发送到玩家 %d 失败: %v", r.id, id, err)
		}
	}
}

func (r *Room) closeAllConnections() {
	for _, m := range r.members {
		m.session.CloseWithoutNotify()
	}
	r.members = make(map[int32]*member)
	r.publishStats()
}

func (r *Room) publishStats() {
	s := RoomStats{
		ID:         r.id,
		Players:    len(r.members),
		Controller: r.controller,
		Phase:      r.machine.Phase().String(),
		FrameID:    r.frameID,
	}
	for _, m := range r.members {
		if m.spectator {
			s.Spectators++
		}
	}
	if g := r.machine.Game(); g != nil {
		s.Stage = g.StageIndex() + 1
		s.Score = g.Session.Score
	}
	if len(r.members) == 0 {
		if r.idleSince.IsZero() {
			r.idleSince = time.Now()
		}
	} else {
		r.idleSince = time.Time{}
	}
	s.IdleSince = r.idleSince
	r.stats.Store(&s)
}
