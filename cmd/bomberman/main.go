package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"bomberman/internal/client"
	"bomberman/pkg/ai"
	"bomberman/pkg/audio"
	"bomberman/pkg/config"
	"bomberman/pkg/core"
	"bomberman/pkg/phase"
)

func main() {
	stages := flag.String("stages", "", "关卡配置文件（为空使用内置关卡）")
	seed := flag.Int64("seed", 0, "随机种子（0 表示按时间）")
	mute := flag.Bool("mute", false, "静音启动")
	demo := flag.Bool("demo", true, "主菜单提供自动演示")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// 配置错误交给阶段机显示在错误界面
	specs, err := config.LoadPath(*stages)
	if err != nil {
		log.Printf("加载关卡失败: %v", err)
	}

	opts := phase.Options{
		Specs:     specs,
		ConfigErr: err,
		Seed:      *seed,
	}
	if *demo {
		opts.Demo = ai.NewAutopilot(*seed, nil)
	}

	speaker := audio.NewSpeaker()
	if err := speaker.Init(); err != nil {
		log.Printf("声卡初始化失败，静音运行: %v", err)
	}
	speaker.SetMuted(*mute)
	defer speaker.Close()

	game := client.NewLocalGame(opts, speaker)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Bomberman - 炸弹人")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(core.FPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
