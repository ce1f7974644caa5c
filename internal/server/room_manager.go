package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultRoomID    = "default"        // 默认房间 ID
	MaxRooms         = 100              // 最大房间数
	RoomEmptyTimeout = 60 * time.Second // 房间空置超时
	cleanupInterval  = 30 * time.Second
)

var (
	ErrRoomNotFound = errors.New("房间不存在")
	ErrTooManyRooms = errors.New("房间数已达上限")
)

// RoomManager 管理全部房间
type RoomManager struct {
	ctx       context.Context
	opts      RoomOptions
	rooms     map[string]*Room // 房间 ID -> 房间
	roomMutex sync.RWMutex     // 保护 rooms
	wg        sync.WaitGroup
	shutdown  chan struct{}
	once      sync.Once
}

// NewRoomManager 创建房间管理器，所有房间共用同一套关卡
func NewRoomManager(ctx context.Context, opts RoomOptions) *RoomManager {
	return &RoomManager{
		ctx:      ctx,
		opts:     opts,
		rooms:    make(map[string]*Room),
		shutdown: make(chan struct{}),
	}
}

// Run 启动清理协程并创建默认房间
func (m *RoomManager) Run() {
	m.wg.Add(1)
	go m.cleanupLoop()

	if _, err := m.getOrCreateRoom(DefaultRoomID); err != nil {
		log.Printf("创建默认房间失败: %v", err)
	}
}

// cleanupLoop 定期清理空房间
func (m *RoomManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.shutdown:
			return
		case now := <-ticker.C:
			m.cleanupEmptyRooms(now)
		}
	}
}

// cleanupEmptyRooms 清理空置超时的房间（保留默认房间）
func (m *RoomManager) cleanupEmptyRooms(now time.Time) int {
	m.roomMutex.Lock()
	defer m.roomMutex.Unlock()

	removed := 0
	for roomID, room := range m.rooms {
		if roomID == DefaultRoomID {
			continue
		}
		stats := room.Stats()
		if stats.Players == 0 && !stats.IdleSince.IsZero() && now.Sub(stats.IdleSince) > RoomEmptyTimeout {
			log.Printf("清理空房间: %s", roomID)
			room.Shutdown()
			delete(m.rooms, roomID)
			removed++
		}
	}
	return removed
}

// getOrCreateRoom 获取或创建房间
func (m *RoomManager) getOrCreateRoom(roomID string) (*Room, error) {
	m.roomMutex.Lock()
	defer m.roomMutex.Unlock()

	if room, ok := m.rooms[roomID]; ok {
		return room, nil
	}
	if len(m.rooms) >= MaxRooms {
		return nil, ErrTooManyRooms
	}

	log.Printf("创建新房间: %s", roomID)
	room := NewRoom(m.ctx, roomID, m.opts)
	m.rooms[roomID] = room

	m.wg.Add(1)
	go room.Run(&m.wg)

	return room, nil
}

func (m *RoomManager) room(roomID string) (*Room, error) {
	m.roomMutex.RLock()
	defer m.roomMutex.RUnlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return room, nil
}

// CreateRoom 创建新房间并返回其 ID
func (m *RoomManager) CreateRoom() (string, error) {
	roomID := uuid.NewString()
	if _, err := m.getOrCreateRoom(roomID); err != nil {
		return "", err
	}
	return roomID, nil
}

// Join 玩家加入房间；带会话令牌时回到令牌记录的房间
func (m *RoomManager) Join(session Session, req JoinEvent) error {
	if req.SessionToken != "" {
		playerID, roomID, err := VerifySessionToken(req.SessionToken)
		if err != nil {
			return err
		}
		room, err := m.room(roomID)
		if err != nil {
			return err
		}
		if err := room.Join(session, req.PlayerName, playerID); err != nil {
			return err
		}
		log.Printf("玩家 %d 重连房间 %s", playerID, roomID)
		return nil
	}

	roomID := req.RoomID
	if roomID == "" {
		roomID = DefaultRoomID
	}
	room, err := m.getOrCreateRoom(roomID)
	if err != nil {
		return err
	}
	return room.Join(session, req.PlayerName, 0)
}

// EnqueueInput 将输入放入对应房间
func (m *RoomManager) EnqueueInput(input InputEvent) {
	room, err := m.room(input.RoomID)
	if err != nil {
		return
	}
	room.EnqueueInput(input)
}

// Leave 玩家离开房间
func (m *RoomManager) Leave(session Session) {
	room, err := m.room(session.RoomID())
	if err != nil {
		log.Printf("警告: 玩家 %d 的离开请求被忽略: %v", session.ID(), err)
		return
	}
	room.Leave(session.ID(), session)
}

// CurrentFrame 房间当前帧号
func (m *RoomManager) CurrentFrame(roomID string) uint32 {
	room, err := m.room(roomID)
	if err != nil {
		return 0
	}
	return room.Stats().FrameID
}

// RoomStats 单个房间的统计信息
func (m *RoomManager) RoomStats(roomID string) (RoomStats, error) {
	room, err := m.room(roomID)
	if err != nil {
		return RoomStats{}, err
	}
	return room.Stats(), nil
}

// GetRoomStats 全部房间的统计信息，按 ID 排序
func (m *RoomManager) GetRoomStats() []RoomStats {
	m.roomMutex.RLock()
	stats := make([]RoomStats, 0, len(m.rooms))
	for _, room := range m.rooms {
		stats = append(stats, room.Stats())
	}
	m.roomMutex.RUnlock()

	sort.Slice(stats, func(i, j int) bool { return stats[i].ID < stats[j].ID })
	return stats
}

// Shutdown 关闭所有房间并等待其退出
func (m *RoomManager) Shutdown() {
	m.once.Do(func() {
		close(m.shutdown)

		m.roomMutex.Lock()
		log.Printf("关闭 %d 个房间...", len(m.rooms))
		for _, room := range m.rooms {
			room.Shutdown()
		}
		m.roomMutex.Unlock()

		m.wg.Wait()
		log.Println("所有房间已关闭")
	})
}
