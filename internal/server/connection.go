package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"bomberman/pkg/protocol"
)

const (
	readTimeout  = 20 * time.Second // 读取超时，大于心跳超时
	writeTimeout = 1 * time.Second  // 写入超时

	InputRate  = rate.Limit(ServerTPS * 3 / 2) // 每秒允许的输入包数
	InputBurst = ServerTPS / 2
)

var (
	ErrSendQueueFull = errors.New("发送队列满")
	ErrConnClosed    = errors.New("连接已关闭")
)

// connHandler 连接把解析好的请求交给服务器处理
type connHandler interface {
	handleJoinRequest(s Session, req *JoinEvent) error
	handleInput(s Session, in *InputEvent)
	currentFrame(roomID string) uint32
	removePlayer(s Session)
}

// Connection 表示一个客户端连接
type Connection struct {
	conn     net.Conn
	server   connHandler
	playerID int32
	roomID   atomic.Value

	// 发送队列
	sendChan chan []byte
	closeCh  chan struct{}
	closed   bool
	closeMu  sync.Mutex

	limiter *rate.Limiter
	dropped atomic.Int64

	lastRecvTime atomic.Value
	rtt          atomic.Int64
}

// NewConnection 创建新连接
func NewConnection(conn net.Conn, server connHandler) *Connection {
	c := &Connection{
		conn:     conn,
		server:   server,
		playerID: -1,                     // -1 表示未分配
		sendChan: make(chan []byte, 256), // 发送队列缓冲区
		closeCh:  make(chan struct{}),
		limiter:  rate.NewLimiter(InputRate, InputBurst),
	}
	c.roomID.Store("")
	c.lastRecvTime.Store(time.Now())
	return c
}

// Handle 处理连接，直到上下文取消或连接关闭
func (c *Connection) Handle(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	log.Printf("%s: 连接处理开始", c)

	wg.Add(3)
	go c.startHeartbeat(ctx, wg)
	go c.sendLoop(ctx, wg)
	go c.receiveLoop(ctx, wg)

	select {
	case <-ctx.Done():
	case <-c.closeCh:
	}

	c.Close()
}

// Close 关闭连接并让玩家离开房间
func (c *Connection) Close() {
	c.closeWithNotify(true)
}

// CloseWithoutNotify 关闭连接但不触发离开房间
func (c *Connection) CloseWithoutNotify() {
	c.closeWithNotify(false)
}

func (c *Connection) closeWithNotify(notify bool) {
	c.closeMu.Lock()
	if c.closed {
		c.closeMu.Unlock()
		return
	}
	c.closed = true
	close(c.closeCh)
	if c.conn != nil {
		c.conn.Close()
	}
	close(c.sendChan)
	c.closeMu.Unlock()

	if notify {
		if c.ID() >= 0 {
			c.server.removePlayer(c)
		}
	}

	log.Printf("%s: 连接已关闭", c)
}

// Send 发送数据（异步）
func (c *Connection) Send(data []byte) error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return ErrConnClosed
	}

	select {
	case c.sendChan <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// sendLoop 发送循环：4 字节大端长度前缀 + 消息体
func (c *Connection) sendLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-c.sendChan:
			if !ok {
				return
			}
			if err := c.writeFrame(data); err != nil {
				log.Printf("%s: 发送数据失败: %v", c, err)
				c.Close()
				return
			}
		}
	}
}

func (c *Connection) writeFrame(data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return protocol.WriteFrame(c.conn, data)
}

// receiveLoop 接收循环
func (c *Connection) receiveLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		data, err := protocol.ReadFrame(c.conn, readTimeout)
		if err != nil {
			var netErr net.Error
			switch {
			case errors.As(err, &netErr) && netErr.Timeout():
				log.Printf("%s: 读取超时", c)
			case !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed):
				log.Printf("%s: 读取失败: %v", c, err)
			}
			c.Close()
			return
		}
		if len(data) == 0 {
			continue
		}

		c.lastRecvTime.Store(time.Now())
		if err := c.handleMessage(data); err != nil {
			log.Printf("%s: 处理消息失败: %v", c, err)
		}
	}
}

// handleMessage 处理接收到的消息
func (c *Connection) handleMessage(data []byte) error {
	event, err := DecodePacket(data)
	if err != nil {
		return fmt.Errorf("反序列化失败: %w", err)
	}

	switch event.Kind {
	case EventJoin:
		if c.ID() >= 0 {
			return fmt.Errorf("玩家已加入")
		}
		if err := c.server.handleJoinRequest(c, event.Join); err != nil {
			return fmt.Errorf("处理加入请求失败: %w", err)
		}
		log.Printf("%s: 加入成功", c)

	case EventInput:
		if c.ID() < 0 {
			return nil
		}
		if !c.limiter.Allow() {
			if n := c.dropped.Add(1); n%ServerTPS == 1 {
				log.Printf("%s: 输入过于频繁，已丢弃 %d 个", c, n)
			}
			return nil
		}
		event.Input.PlayerID = c.ID()
		event.Input.RoomID = c.RoomID()
		c.server.handleInput(c, event.Input)

	case EventPing:
		pong := protocol.Pong{
			ClientTime:  event.Ping.ClientTime,
			ServerTime:  time.Now().UnixMilli(),
			ServerFrame: c.server.currentFrame(c.RoomID()),
		}
		return c.Send(protocol.NewPongPacket(pong))

	case EventPong:
		c.handlePong(event.Pong)

	case EventLeave:
		c.Close()

	default:
		return fmt.Errorf("未知消息类型")
	}

	return nil
}

// String 返回连接的字符串表示
func (c *Connection) String() string {
	if id := c.ID(); id >= 0 {
		return fmt.Sprintf("玩家 %d@%s", id, c.RoomID())
	}
	return fmt.Sprintf("连接 %s", c.conn.RemoteAddr())
}

func (c *Connection) ID() int32 {
	return atomic.LoadInt32(&c.playerID)
}

func (c *Connection) SetPlayerID(playerID int32) {
	atomic.StoreInt32(&c.playerID, playerID)
}

func (c *Connection) RoomID() string {
	return c.roomID.Load().(string)
}

func (c *Connection) SetRoomID(roomID string) {
	c.roomID.Store(roomID)
}

// RTT 最近一次心跳测得的往返时延
func (c *Connection) RTT() time.Duration {
	return time.Duration(c.rtt.Load()) * time.Millisecond
}

const (
	heartbeatInterval = 5 * time.Second
	heartbeatTimeout  = 15 * time.Second
)

func (c *Connection) startHeartbeat(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closeCh:
			return
		case <-ticker.C:
			lastRecv, _ := c.lastRecvTime.Load().(time.Time)
			if time.Since(lastRecv) > heartbeatTimeout {
				log.Printf("%s: 心跳超时", c)
				c.Close()
				return
			}
			_ = c.Send(protocol.NewPingPacket(time.Now().UnixMilli()))
		}
	}
}

func (c *Connection) handlePong(pong *PongEvent) {
	if pong == nil || pong.ClientTime <= 0 {
		return
	}
	c.rtt.Store(time.Now().UnixMilli() - pong.ClientTime)
}
