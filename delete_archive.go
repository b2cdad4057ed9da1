package main

import (
	"celebrity-news/config"
	"celebrity-news/internal/storage"
	"context"
	"log"
	"time"
)

// 一次性清理脚本：删除某人某天的归档文章集
func main() {
	// 设置日志格式
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("开始删除归档文章集")

	// 加载配置
	cfg := config.LoadConfig()

	// 创建归档客户端
	archive, err := storage.NewArchive(&cfg.MinIO, cfg.Server.Env)
	if err != nil {
		log.Fatalf("创建归档客户端失败: %v", err)
	}

	// 要删除的人物和日期
	person := "Taylor Swift"
	date := "2025-04-23"

	// 创建上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 检查归档是否存在
	exists, err := archive.SetExists(ctx, person, date)
	if err != nil {
		log.Fatalf("检查归档是否存在失败: %v", err)
	}

	if !exists {
		log.Printf("归档 %s / %s 不存在", person, date)
		return
	}

	// 删除归档
	if err := archive.DeleteSet(ctx, person, date); err != nil {
		log.Fatalf("删除归档失败: %v", err)
	}

	log.Printf("归档 %s / %s 已成功删除", person, date)
}
