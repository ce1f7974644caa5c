package client

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"bomberman/internal/client/netplay"
	"bomberman/pkg/audio"
	"bomberman/pkg/phase"
)

const reconnectInterval = 2 * time.Second

// RemoteGame 联机模式：上报按键，渲染服务器下发的帧
type RemoteGame struct {
	client   *netplay.Client
	sound    *netplay.SoundSync
	speaker  *audio.Speaker
	renderer *Renderer
	input    phase.Input
	frame    phase.Frame

	lastAttempt time.Time
}

// NewRemoteGame 创建联机游戏，client 需已连接
func NewRemoteGame(client *netplay.Client, speaker *audio.Speaker) *RemoteGame {
	g := &RemoteGame{
		client:   client,
		speaker:  speaker,
		renderer: NewRenderer(),
		input:    Keyboard{},
	}
	if speaker != nil {
		g.sound = netplay.NewSoundSync(speaker)
	}
	return g
}

// Update 上报按键并取出一帧；断线后定期尝试重连
func (g *RemoteGame) Update() error {
	handleWindowKeys(g.speaker)

	if !g.client.Connected() {
		g.reconnect()
		return nil
	}
	if !g.client.Spectator() {
		if err := g.client.SendKeys(phase.Snapshot(g.input)); err != nil {
			log.Printf("发送输入失败: %v", err)
		}
	}
	if msg, ok := g.client.NextFrame(); ok {
		g.frame = msg.Frame
		if g.sound != nil {
			g.sound.Apply(msg)
		}
	}
	return nil
}

func (g *RemoteGame) reconnect() {
	if time.Since(g.lastAttempt) < reconnectInterval {
		return
	}
	g.lastAttempt = time.Now()
	log.Printf("连接已断开 (%v)，尝试重连...", g.client.Err())
	if err := g.client.Reconnect(); err != nil {
		log.Printf("重连失败: %v", err)
		return
	}
	log.Printf("重连成功，玩家 %d，房间 %s", g.client.PlayerID(), g.client.RoomID())
}

// Draw 绘制最近一帧与连接状态
func (g *RemoteGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.frame, g.status())
}

func (g *RemoteGame) status() string {
	switch {
	case !g.client.Connected():
		return "RECONNECTING..."
	case g.client.Spectator():
		return fmt.Sprintf("SPECTATING  RTT %dms", g.client.RTT().Milliseconds())
	}
	return fmt.Sprintf("RTT %dms", g.client.RTT().Milliseconds())
}

// Layout 画面尺寸跟随关卡大小
func (g *RemoteGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Size()
}
