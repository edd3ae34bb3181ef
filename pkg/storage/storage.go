// Package storage provides a unified artifact storage layer with multiple
// backends; exports and generated assets are written through it
// Package storage 提供统一的产物存储层，支持多种后端；导出与生成资源经由它写入
package storage

import (
	"io"
	"time"

	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage/aws_s3"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage/local_fs"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage/webdav"
)

type Type = string

const (
	LOCAL  Type = "localfs"
	S3     Type = "s3"
	R2     Type = "r2"
	WebDAV Type = "webdav"
)

var StorageTypeMap = map[Type]bool{
	LOCAL:  true,
	S3:     true,
	R2:     true,
	WebDAV: true,
}

// Config unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Cloud storage (S3/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific
	CustomPath      string `yaml:"custom-path"`

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath       string `yaml:"save-path" default:"storage/exports"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	BaseURL        string `yaml:"base-url"`
}

// Storager is the backend contract: write a stream or raw content under a
// path key, or delete it, returning the public key/URL
// Storager 是后端契约：按路径键写入流或内容、或删除，返回可访问的键/URL
type Storager interface {
	SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(pathKey string, content []byte, modTime time.Time) (string, error)
	Delete(pathKey string) error
}

// NewClient builds a backend client from config
// NewClient 根据配置构建后端客户端
func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:       config.SavePath,
			CustomPath:     config.CustomPath,
			HttpfsIsEnable: config.HttpfsIsEnable,
			BaseURL:        config.BaseURL,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
