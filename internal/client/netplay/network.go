package netplay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	kcp "github.com/xtaci/kcp-go/v5"

	"bomberman/pkg/phase"
	"bomberman/pkg/protocol"
)

const (
	joinTimeout    = 10 * time.Second
	readTimeout    = 20 * time.Second
	writeTimeout   = time.Second
	pingInterval   = 2 * time.Second
	resendInterval = 10 // 按键不变时每隔多少帧重发一次
)

var ErrNotConnected = errors.New("未连接到服务器")

// Config 联机参数
type Config struct {
	Addr   string
	Proto  string // tcp 或 kcp
	Name   string
	RoomID string
}

// Client 联机客户端：上报按键状态，接收服务器画面
type Client struct {
	cfg Config

	// 加入结果，Connect 之后只读
	playerID  int32
	roomID    string
	token     string
	spectator bool

	conn     net.Conn
	sendChan chan []byte
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu     sync.Mutex
	frames *jitterBuffer
	err    error

	connected atomic.Bool
	rtt       atomic.Int64

	inputSeq  uint32
	lastKeys  phase.KeySet
	sinceSend int
}

// NewClient 创建联机客户端
func NewClient(cfg Config) *Client {
	if cfg.Proto == "" {
		cfg.Proto = "tcp"
	}
	return &Client{cfg: cfg, frames: newJitterBuffer()}
}

func (c *Client) dial() (net.Conn, error) {
	switch c.cfg.Proto {
	case "tcp":
		conn, err := net.DialTimeout("tcp", c.cfg.Addr, 5*time.Second)
		if err != nil {
			return nil, err
		}
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			_ = tcpConn.SetNoDelay(true)
		}
		return conn, nil
	case "kcp":
		sess, err := kcp.DialWithOptions(c.cfg.Addr, nil, 0, 0)
		if err != nil {
			return nil, err
		}
		sess.SetStreamMode(true)
		sess.SetNoDelay(1, 10, 2, 1)
		sess.SetWindowSize(256, 256)
		sess.SetACKNoDelay(true)
		return sess, nil
	default:
		return nil, fmt.Errorf("不支持的协议: %s", c.cfg.Proto)
	}
}

// Connect 连接并加入房间；已有会话令牌时按重连处理
func (c *Client) Connect() error {
	log.Printf("连接到服务器: %s (%s)", c.cfg.Addr, c.cfg.Proto)

	conn, err := c.dial()
	if err != nil {
		return fmt.Errorf("连接服务器失败: %w", err)
	}

	resp, err := c.join(conn)
	if err != nil {
		conn.Close()
		return err
	}

	c.playerID = resp.PlayerID
	c.roomID = resp.RoomID
	c.token = resp.SessionToken
	c.spectator = resp.Spectator
	log.Printf("已加入房间 %s，玩家 ID: %d，观众: %v", c.roomID, c.playerID, c.spectator)

	c.mu.Lock()
	c.frames = newJitterBuffer()
	c.err = nil
	c.mu.Unlock()

	c.conn = conn
	c.sendChan = make(chan []byte, 64)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.sinceSend = resendInterval
	c.connected.Store(true)

	c.wg.Add(3)
	go c.receiveLoop()
	go c.sendLoop()
	go c.pingLoop()
	return nil
}

// join 同步完成加入握手
func (c *Client) join(conn net.Conn) (protocol.JoinResponse, error) {
	req := protocol.JoinRequest{PlayerName: c.cfg.Name, RoomID: c.cfg.RoomID, SessionToken: c.token}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := protocol.WriteFrame(conn, protocol.NewJoinRequestPacket(req)); err != nil {
		return protocol.JoinResponse{}, fmt.Errorf("发送加入请求失败: %w", err)
	}

	deadline := time.Now().Add(joinTimeout)
	for time.Now().Before(deadline) {
		data, err := protocol.ReadFrame(conn, time.Until(deadline))
		if err != nil {
			return protocol.JoinResponse{}, fmt.Errorf("等待加入响应失败: %w", err)
		}
		pkt, err := protocol.UnmarshalPacket(data)
		if err != nil || pkt.Type != protocol.MessageJoinResponse {
			continue
		}
		resp, err := protocol.ParseJoinResponse(pkt)
		if err != nil {
			return resp, err
		}
		if !resp.Success {
			return resp, fmt.Errorf("加入失败: %s", resp.Error)
		}
		return resp, nil
	}
	return protocol.JoinResponse{}, errors.New("等待加入响应超时")
}

// Reconnect 断线后用会话令牌重新加入原房间
// Close、Reconnect、SendKeys 只能在同一协程中调用。
func (c *Client) Reconnect() error {
	c.shutdown(false)
	return c.Connect()
}

// Close 通知服务器离开并断开
func (c *Client) Close() {
	c.shutdown(true)
	log.Printf("网络客户端已关闭")
}

func (c *Client) shutdown(leave bool) {
	if c.cancel == nil {
		return
	}
	if leave && c.connected.Load() {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = protocol.WriteFrame(c.conn, protocol.NewLeavePacket())
	}
	c.connected.Store(false)
	c.cancel()
	c.conn.Close()
	c.wg.Wait()
	c.cancel = nil
}

// PlayerID 服务器分配的玩家 ID
func (c *Client) PlayerID() int32 { return c.playerID }

// RoomID 所在房间
func (c *Client) RoomID() string { return c.roomID }

// Spectator 是否为观众
func (c *Client) Spectator() bool { return c.spectator }

// Connected 连接是否可用
func (c *Client) Connected() bool { return c.connected.Load() }

// RTT 最近一次测得的往返时延
func (c *Client) RTT() time.Duration {
	return time.Duration(c.rtt.Load()) * time.Millisecond
}

// Err 连接中断的原因
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// NextFrame 取出下一帧用于渲染
func (c *Client) NextFrame() (protocol.FrameMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames.pop()
}

// SendKeys 上报按键状态；状态变化时立即发送，否则定期重发
func (c *Client) SendKeys(keys phase.KeySet) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	c.sinceSend++
	if keys == c.lastKeys && c.sinceSend < resendInterval {
		return nil
	}
	c.lastKeys = keys
	c.sinceSend = 0
	c.inputSeq++
	return c.send(protocol.NewInputPacket(protocol.Input{Seq: c.inputSeq, Keys: uint32(keys)}))
}

func (c *Client) send(data []byte) error {
	select {
	case <-c.ctx.Done():
		return ErrNotConnected
	case c.sendChan <- data:
		return nil
	default:
		return errors.New("发送队列满")
	}
}

func (c *Client) fail(err error) {
	select {
	case <-c.ctx.Done():
		return
	default:
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
	c.connected.Store(false)
	c.cancel()
	c.conn.Close()
}

// receiveLoop 接收循环
func (c *Client) receiveLoop() {
	defer c.wg.Done()

	for {
		data, err := protocol.ReadFrame(c.conn, readTimeout)
		if err != nil {
			c.fail(fmt.Errorf("读取失败: %w", err))
			return
		}
		if err := c.handleMessage(data); err != nil {
			log.Printf("处理消息失败: %v", err)
		}
	}
}

func (c *Client) handleMessage(data []byte) error {
	pkt, err := protocol.UnmarshalPacket(data)
	if err != nil {
		return err
	}

	switch pkt.Type {
	case protocol.MessageFrame:
		msg, err := protocol.ParseFrame(pkt)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.frames.push(msg)
		c.mu.Unlock()

	case protocol.MessagePing:
		ping, err := protocol.ParsePing(pkt)
		if err != nil {
			return err
		}
		return c.send(protocol.NewPongPacket(protocol.Pong{
			ClientTime: ping.ClientTime,
			ServerTime: time.Now().UnixMilli(),
		}))

	case protocol.MessagePong:
		pong, err := protocol.ParsePong(pkt)
		if err != nil {
			return err
		}
		c.rtt.Store(time.Now().UnixMilli() - pong.ClientTime)
	}
	return nil
}

// sendLoop 发送循环
func (c *Client) sendLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		case data := <-c.sendChan:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := protocol.WriteFrame(c.conn, data); err != nil {
				c.fail(fmt.Errorf("发送失败: %w", err))
				return
			}
		}
	}
}

func (c *Client) pingLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			_ = c.send(protocol.NewPingPacket(time.Now().UnixMilli()))
		}
	}
}
