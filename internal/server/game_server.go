package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"bomberman/pkg/protocol"
)

const (
	MaxPlayers   = 4  // 每个房间最多连接数（1 名操控者 + 观众）
	ServerTPS    = 60 // 服务器每秒更新次数
	TickDuration = time.Second / ServerTPS
)

// Config 服务器配置
type Config struct {
	Addr     string // 游戏监听地址
	Proto    string // tcp 或 kcp
	HTTPAddr string // 房间统计接口地址，空表示不启用
	Room     RoomOptions
}

// GameServer 游戏服务器
type GameServer struct {
	cfg   Config
	rooms *RoomManager

	listener Listener
	httpSrv  *http.Server

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	ready    chan struct{}
	shutdown chan struct{}
	once     sync.Once
}

// NewGameServer 创建游戏服务器
func NewGameServer(cfg Config) *GameServer {
	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Proto == "" {
		cfg.Proto = "tcp"
	}
	return &GameServer{
		cfg:      cfg,
		rooms:    NewRoomManager(ctx, cfg.Room),
		ctx:      ctx,
		cancel:   cancel,
		ready:    make(chan struct{}),
		shutdown: make(chan struct{}),
	}
}

// Start 启动服务器，阻塞到 Shutdown 被调用
func (s *GameServer) Start() error {
	log.Printf("启动游戏服务器: %s (%s)", s.cfg.Addr, s.cfg.Proto)

	listener, err := newListener(s.cfg.Proto, s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("监听失败: %w", err)
	}
	s.listener = listener
	log.Printf("服务器监听中: %s", listener.Addr())

	s.rooms.Run()

	if s.cfg.HTTPAddr != "" {
		s.httpSrv = &http.Server{
			Addr:              s.cfg.HTTPAddr,
			Handler:           NewRouter(s.rooms),
			ReadHeaderTimeout: 5 * time.Second,
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			log.Printf("统计接口监听中: %s", s.cfg.HTTPAddr)
			if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("统计接口异常退出: %v", err)
			}
		}()
	}

	s.wg.Add(1)
	go s.acceptLoop()

	close(s.ready)
	<-s.shutdown

	log.Println("服务器正在关闭...")
	return nil
}

// Ready 监听成功后关闭
func (s *GameServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr 实际监听地址，Ready 之后可用
func (s *GameServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Rooms 房间管理器
func (s *GameServer) Rooms() *RoomManager {
	return s.rooms
}

// Shutdown 优雅关闭服务器
func (s *GameServer) Shutdown() {
	s.once.Do(func() {
		log.Println("正在关闭服务器...")

		s.cancel()
		if s.listener != nil {
			s.listener.Close()
		}
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			_ = s.httpSrv.Shutdown(ctx)
			cancel()
		}
		s.rooms.Shutdown()

		close(s.shutdown)
		s.wg.Wait()

		log.Println("服务器已关闭")
	})
}

// acceptLoop 接受客户端连接
func (s *GameServer) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				log.Println("停止接受新连接")
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("接受连接失败: %v", err)
			continue
		}

		log.Printf("新连接来自: %s", conn.RemoteAddr())

		connection := NewConnection(conn, s)
		s.wg.Add(1)
		go connection.Handle(s.ctx, &s.wg)
	}
}

// handleJoinRequest 处理加入请求，失败时回复错误
func (s *GameServer) handleJoinRequest(session Session, req *JoinEvent) error {
	if err := s.rooms.Join(session, *req); err != nil {
		_ = session.Send(protocol.NewJoinResponsePacket(protocol.JoinResponse{Error: err.Error()}))
		return err
	}
	return nil
}

func (s *GameServer) handleInput(_ Session, in *InputEvent) {
	s.rooms.EnqueueInput(*in)
}

func (s *GameServer) currentFrame(roomID string) uint32 {
	return s.rooms.CurrentFrame(roomID)
}

func (s *GameServer) removePlayer(session Session) {
	s.rooms.Leave(session)
}
