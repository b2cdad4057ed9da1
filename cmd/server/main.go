package main

import (
	"celebrity-news/config"
	"celebrity-news/internal/api"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
)

func main() {
	// 设置日志格式
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("启动名人新闻服务")

	// 加载配置
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		// 缺少密钥不致命：服务照常启动，请求时返回配置错误
		log.Printf("警告: %v", err)
	}

	// 创建API服务器
	server, err := api.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	// 为热门人物定时预生成
	if len(cfg.Server.PrefetchPeople) > 0 {
		c := cron.New(cron.WithSeconds())

		// 每天早上6点执行
		_, err = c.AddFunc("0 0 6 * * *", func() {
			log.Printf("定时任务触发：预生成 %d 位人物的文章", len(cfg.Server.PrefetchPeople))
			for _, person := range cfg.Server.PrefetchPeople {
				go server.Generate(person)
			}
		})

		if err != nil {
			log.Printf("添加定时任务失败: %v", err)
		} else {
			c.Start()
			defer c.Stop()
			log.Println("定时任务已启动")
		}
	}

	// 创建通道接收系统信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器（非阻塞）
	go func() {
		log.Printf("服务器正在监听端口 %s", cfg.Server.Port)
		if err := server.Run(); err != nil {
			log.Fatalf("服务器运行失败: %v", err)
		}
	}()

	// 等待退出信号
	<-quit
	log.Println("收到退出信号，正在关闭服务")
}
