package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"bomberman/internal/client"
	"bomberman/internal/client/netplay"
	"bomberman/pkg/audio"
	"bomberman/pkg/core"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "服务器地址")
	proto := flag.String("proto", "tcp", "传输协议: tcp 或 kcp")
	room := flag.String("room", "", "房间 ID（为空加入默认房间）")
	name := flag.String("name", "player", "玩家昵称")
	mute := flag.Bool("mute", false, "静音启动")
	flag.Parse()

	nc := netplay.NewClient(netplay.Config{
		Addr:   *addr,
		Proto:  *proto,
		Name:   *name,
		RoomID: *room,
	})
	if err := nc.Connect(); err != nil {
		log.Fatalf("连接服务器失败: %v", err)
	}
	defer nc.Close()

	role := "控制者"
	if nc.Spectator() {
		role = "观战"
	}
	log.Printf("已加入房间 %s，玩家 %d（%s）", nc.RoomID(), nc.PlayerID(), role)

	speaker := audio.NewSpeaker()
	if err := speaker.Init(); err != nil {
		log.Printf("声卡初始化失败，静音运行: %v", err)
	}
	speaker.SetMuted(*mute)
	defer speaker.Close()

	game := client.NewRemoteGame(nc, speaker)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Bomberman - 炸弹人 [" + *name + "@" + nc.RoomID() + "]")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(core.FPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
