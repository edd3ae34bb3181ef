package aws_s3

import (
	"bytes"
	"context"
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
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type S3 struct {
	S3Client *s3.Client
	Config   *Config
	logger   *zap.Logger
}

// Option 配置选项函数类型
type Option func(*S3)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *S3) {
		s.logger = logger
	}
}

var clients = make(map[string]*S3)

// NewClient creates an S3 storage instance; instances are cached per key id
// NewClient 创建 S3 存储实例；按 AccessKeyID 缓存实例
func NewClient(conf *Config, opts ...Option) (*S3, error) {

	if c, ok := clients[conf.AccessKeyID+conf.BucketName]; ok {
		for _, opt := range opts {
			opt(c)
		}
		return c, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	client := &S3{
		S3Client: s3.NewFromConfig(cfg),
		Config:   conf,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}

	clients[conf.AccessKeyID+conf.BucketName] = client
	return client, nil
}

// SendFile 上传文件流
func (p *S3) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey

	_, err := p.S3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(fileKey),
		Body:        file,
		ContentType: aws.String(cType),
	})
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return fileKey, nil
}

// SendContent 上传字节内容
func (p *S3) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	return p.SendFile(pathKey, bytes.NewReader(content), "application/octet-stream", modTime)
}

// Delete 删除对象
func (p *S3) Delete(pathKey string) error {
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey

	_, err := p.S3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return errors.Wrap(err, "aws_s3")
	}
	return nil
}
