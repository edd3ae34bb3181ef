package cloudflare_r2

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/haierkeys/storyboard-studio-service/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	AccountID       string `yaml:"account-id"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type R2 struct {
	S3Client *s3.Client
	Config   *Config
	logger   *zap.Logger
}

// Option configuration option function type
// Option 配置选项函数类型
type Option func(*R2)

// WithLogger sets the logger
// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(r *R2) {
		r.logger = logger
	}
}

var clients = make(map[string]*R2)

// NewClient creates an R2 storage instance
// R2 speaks the S3 protocol against an account-scoped endpoint
// NewClient 创建 R2 存储实例
// R2 使用账户级 endpoint 上的 S3 协议
func NewClient(conf *Config, opts ...Option) (*R2, error) {

	if c, ok := clients[conf.AccountID+conf.BucketName]; ok {
		for _, opt := range opts {
			opt(c)
		}
		return c, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "cloudflare_r2")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", conf.AccountID)
	client := &R2{
		S3Client: s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		}),
		Config: conf,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}

	clients[conf.AccountID+conf.BucketName] = client
	return client, nil
}

// SendFile 上传文件流
func (p *R2) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey

	_, err := p.S3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(fileKey),
		Body:        file,
		ContentType: aws.String(cType),
	})
	if err != nil {
		return "", errors.Wrap(err, "cloudflare_r2")
	}
	return fileKey, nil
}

// SendContent 上传字节内容
func (p *R2) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	return p.SendFile(pathKey, bytes.NewReader(content), "application/octet-stream", modTime)
}

// Delete 删除对象
func (p *R2) Delete(pathKey string) error {
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey

	_, err := p.S3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return errors.Wrap(err, "cloudflare_r2")
	}
	return nil
}
