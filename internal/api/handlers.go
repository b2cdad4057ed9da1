package api

import (
	"celebrity-news/config"
	"celebrity-news/internal/generator"
	"celebrity-news/internal/models"
	"celebrity-news/internal/news"
	"celebrity-news/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server 是API服务器结构
type Server struct {
	config        *config.Config
	router        *gin.Engine
	generator     *generator.Generator
	archive       *storage.Archive
	isProcessing  bool
	lastGenerated time.Time
}

// NewServer 创建一个新的API服务器
func NewServer(cfg *config.Config) (*Server, error) {
	// 创建生成器
	gen := generator.NewGenerator(cfg)

	// 创建归档客户端，不可用时降级为不归档
	archive, err := storage.NewArchive(&cfg.MinIO, cfg.Server.Env)
	if err != nil {
		log.Printf("警告: MinIO归档不可用，生成结果将不缓存: %v", err)
		archive = nil
	}

	// 创建Gin路由
	router := gin.Default()

	// 启用CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 创建服务器
	server := &Server{
		config:    cfg,
		router:    router,
		generator: gen,
		archive:   archive,
	}

	// 注册路由
	server.registerRoutes()

	return server, nil
}

// registerRoutes 注册API路由
func (s *Server) registerRoutes() {
	// 健康检查
	s.router.GET("/health", s.healthHandler)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// 为指定人物生成文章
		v1.POST("/generate", s.generateHandler)

		// 获取归档的文章集
		v1.GET("/articles", s.getArticlesHandler)

		// 列出某人已归档的日期
		v1.GET("/articles/dates", s.listDatesHandler)

		// 删除归档的文章集
		v1.DELETE("/articles", s.deleteArticlesHandler)

		// 获取处理状态
		v1.GET("/status", s.getStatusHandler)
	}
}

// Run 启动API服务器
func (s *Server) Run() error {
	return s.router.Run(":" + s.config.Server.Port)
}

// Generate 导出生成方法，供定时任务调用
func (s *Server) Generate(person string) {
	if _, err := s.generate(person, s.config.News.MaxItems); err != nil {
		log.Printf("定时生成 %s 失败: %v", person, err)
	}
}

// healthHandler 健康检查处理程序
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// generateHandler 为指定人物生成文章
func (s *Server) generateHandler(c *gin.Context) {
	// 获取请求参数
	var req struct {
		Person   string `json:"person" binding:"required"`
		MaxItems int    `json:"maxItems"`
		Force    bool   `json:"force"` // 强制重新生成，忽略归档
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数，person不能为空",
		})
		return
	}

	// 配置错误在任何网络调用之前返回给用户
	if err := s.config.Validate(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
		})
		return
	}

	set, cached, err := s.generateWithCache(c, req.Person, req.MaxItems, req.Force)
	if err != nil {
		s.renderPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requestId": uuid.NewString(),
		"person":    set.Person,
		"date":      set.Date,
		"cached":    cached,
		"articles":  set.Articles,
	})
}

// generateWithCache 归档里有今天的结果就直接返回，否则走生成流水线
func (s *Server) generateWithCache(c *gin.Context, person string, maxItems int, force bool) (*models.ArticleSet, bool, error) {
	ctx := c.Request.Context()
	date := time.Now().Format("2006-01-02")

	if s.archive != nil && !force {
		exists, err := s.archive.SetExists(ctx, person, date)
		if err != nil {
			log.Printf("检查归档失败: %v", err)
		} else if exists {
			loaded, err := s.archive.LoadSet(ctx, person, date)
			if err == nil {
				return loaded, true, nil
			}
			log.Printf("读取归档失败，改为重新生成: %v", err)
		}
	}

	result, err := s.generate(person, maxItems)
	if err != nil {
		return nil, false, err
	}
	return result, false, nil
}

// generate 执行生成流水线并归档结果
// 生成过程不随请求取消而中断：新的提交只会开始新的一次生成
func (s *Server) generate(person string, maxItems int) (*models.ArticleSet, error) {
	log.Printf("开始为 %s 生成文章", person)
	s.isProcessing = true
	defer func() {
		s.isProcessing = false
		s.lastGenerated = time.Now()
	}()

	ctx := context.Background()
	set, err := s.generator.Generate(ctx, person, maxItems)
	if err != nil {
		log.Printf("为 %s 生成文章失败: %v", person, err)
		return nil, err
	}

	// 归档，失败只记录日志
	if s.archive != nil {
		if err := s.archive.SaveSet(ctx, set); err != nil {
			log.Printf("归档文章集失败: %v", err)
		}
	}

	log.Printf("为 %s 生成了 %d 篇文章", person, len(set.Articles))
	return set, nil
}

// getArticlesHandler 获取归档的文章集
func (s *Server) getArticlesHandler(c *gin.Context) {
	person := c.Query("person")
	if person == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "person不能为空",
		})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "归档服务不可用",
		})
		return
	}

	set, err := s.archive.LoadSet(c.Request.Context(), person, date)
	if err != nil {
		log.Printf("获取文章集失败: %v", err)
		c.JSON(http.StatusNotFound, gin.H{
			"error": "未找到该人物当天的文章",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"person":   set.Person,
		"date":     set.Date,
		"articles": set.Articles,
	})
}

// listDatesHandler 列出某人已归档的日期
func (s *Server) listDatesHandler(c *gin.Context) {
	person := c.Query("person")
	if person == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "person不能为空",
		})
		return
	}

	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "归档服务不可用",
		})
		return
	}

	dates, err := s.archive.ListDates(c.Request.Context(), person)
	if err != nil {
		log.Printf("列出归档失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "列出归档失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"person": person,
		"dates":  dates,
	})
}

// deleteArticlesHandler 删除归档的文章集
func (s *Server) deleteArticlesHandler(c *gin.Context) {
	person := c.Query("person")
	date := c.Query("date")
	if person == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "person和date不能为空",
		})
		return
	}

	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "归档服务不可用",
		})
		return
	}

	if err := s.archive.DeleteSet(c.Request.Context(), person, date); err != nil {
		log.Printf("删除归档失败: %v", err)
		// 继续返回成功，因为有可能归档不存在
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "归档删除成功",
		"person":  person,
		"date":    date,
	})
}

// getStatusHandler 获取处理状态
func (s *Server) getStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"isProcessing":  s.isProcessing,
		"lastGenerated": s.lastGenerated.Format(time.RFC3339),
	})
}

// renderPipelineError 把流水线错误映射为用户可见的响应
func (s *Server) renderPipelineError(c *gin.Context, err error) {
	var apiErr *news.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"error": apiErr.Message,
		})
		return
	}

	// AI终态失败等其他上游错误
	c.JSON(http.StatusBadGateway, gin.H{
		"error": "生成文章失败，请稍后再试",
	})
}
