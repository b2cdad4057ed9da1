package storage

import (
	"bytes"
	"celebrity-news/config"
	"celebrity-news/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archive 把生成的文章集按 人物+日期 归档到MinIO，作为生成流水线前面的缓存
type Archive struct {
	client     *minio.Client
	bucketName string
	env        string
}

// NewArchive 创建归档客户端并确保bucket存在
func NewArchive(cfg *config.MinIOConfig, env string) (*Archive, error) {
	// 解析endpoint
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("解析MinIO endpoint失败: %w", err)
	}

	secure := u.Scheme == "https"
	endpoint := u.Host
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	// 确保bucket存在
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查bucket是否存在失败: %w", err)
	}
	if !exists {
		log.Printf("Bucket %s 不存在，正在创建...", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建bucket失败: %w", err)
		}
		log.Printf("Bucket %s 创建成功", cfg.BucketName)
	}

	return &Archive{
		client:     client,
		bucketName: cfg.BucketName,
		env:        env,
	}, nil
}

// SaveSet 归档一次生成的文章集
func (a *Archive) SaveSet(ctx context.Context, set *models.ArticleSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("序列化文章集失败: %w", err)
	}

	objectName := a.objectName(set.Person, set.Date)
	reader := bytes.NewReader(data)
	info, err := a.client.PutObject(ctx, a.bucketName, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("上传文章集失败: %w", err)
	}

	log.Printf("文章集 %s 归档成功，大小: %d", objectName, info.Size)
	return nil
}

// LoadSet 读取归档的文章集
func (a *Archive) LoadSet(ctx context.Context, person, date string) (*models.ArticleSet, error) {
	objectName := a.objectName(person, date)
	obj, err := a.client.GetObject(ctx, a.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取文章集失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取文章集失败: %w", err)
	}

	var set models.ArticleSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("解析文章集失败: %w", err)
	}
	return &set, nil
}

// SetExists 检查某人某天的文章集是否已归档
func (a *Archive) SetExists(ctx context.Context, person, date string) (bool, error) {
	obj, err := a.client.GetObject(ctx, a.bucketName, a.objectName(person, date), minio.GetObjectOptions{})
	if err != nil {
		return false, fmt.Errorf("获取文章集失败: %w", err)
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		// 对象不存在
		return false, nil
	}
	return stat.Size > 0, nil
}

// DeleteSet 删除归档的文章集
func (a *Archive) DeleteSet(ctx context.Context, person, date string) error {
	return a.client.RemoveObject(ctx, a.bucketName, a.objectName(person, date), minio.RemoveObjectOptions{})
}

// ListDates 列出某人已归档的所有日期
func (a *Archive) ListDates(ctx context.Context, person string) ([]string, error) {
	prefix := fmt.Sprintf("articles:%s:%s:", a.env, slug(person))
	objectCh := a.client.ListObjects(ctx, a.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var dates []string
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("列出归档失败: %w", object.Err)
		}
		dates = append(dates, strings.TrimPrefix(object.Key, prefix))
	}
	return dates, nil
}

// objectName 构建归档对象的键名
func (a *Archive) objectName(person, date string) string {
	return fmt.Sprintf("articles:%s:%s:%s", a.env, slug(person), date)
}

// slug 把人物名转为键名安全的形式
func slug(person string) string {
	s := strings.ToLower(strings.TrimSpace(person))
	return strings.ReplaceAll(s, " ", "-")
}
