package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bomberman/internal/server"
	"bomberman/pkg/config"
)

func main() {
	// 命令行参数
	address := flag.String("addr", ":8080", "服务器监听地址")
	proto := flag.String("proto", "tcp", "传输协议: tcp 或 kcp")
	httpAddr := flag.String("http", ":8081", "房间统计接口地址（为空不启用）")
	stages := flag.String("stages", "", "关卡配置文件（为空使用内置关卡）")
	seed := flag.Int64("seed", 0, "随机种子（0 表示按时间）")
	demo := flag.Bool("demo", false, "主菜单提供自动演示")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	specs, err := config.LoadPath(*stages)
	if err != nil {
		log.Printf("加载关卡失败: %v", err)
	}

	gameServer := server.NewGameServer(server.Config{
		Addr:     *address,
		Proto:    *proto,
		HTTPAddr: *httpAddr,
		Room: server.RoomOptions{
			Specs:     specs,
			ConfigErr: err,
			Seed:      *seed,
			Demo:      *demo,
		},
	})

	// 启动服务器（在新的 goroutine 中）
	go func() {
		if err := gameServer.Start(); err != nil {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()
	<-gameServer.Ready()

	log.Println("========================================")
	log.Println("  Bomberman 联机服务器")
	log.Println("========================================")
	log.Printf("监听地址: %s (%s)", gameServer.Addr(), *proto)
	if *httpAddr != "" {
		log.Printf("房间接口: http://%s/rooms", *httpAddr)
	}
	log.Printf("每房间人数上限: %d", server.MaxPlayers)
	log.Printf("服务器 TPS: %d", server.ServerTPS)
	log.Println("========================================")
	log.Println("按 Ctrl+C 停止服务器")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("正在关闭服务器...")
	gameServer.Shutdown()
	log.Println("服务器已关闭")
}
