package webdav

import (
	"io"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config 结构体用于存储 WebDAV 连接信息
type Config struct {
	Endpoint   string `yaml:"endpoint"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV 结构体表示 WebDAV 客户端
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

var clients = make(map[string]*WebDAV)

// NewClient 创建一个新的 WebDAV 客户端实例
func NewClient(conf *Config) (*WebDAV, error) {
	key := conf.Endpoint + conf.User + conf.CustomPath
	if clients[key] != nil {
		return clients[key], nil
	}

	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	if err := c.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}

	clients[key] = &WebDAV{
		Client: c,
		Config: conf,
	}
	return clients[key], nil
}

func (w *WebDAV) fileKey(pathKey string) string {
	return path.Join("/", w.Config.CustomPath, pathKey)
}

// SendFile 上传文件流
func (w *WebDAV) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	fileKey := w.fileKey(pathKey)

	if dir := path.Dir(fileKey); dir != "/" {
		_ = w.Client.MkdirAll(dir, 0755)
	}

	if err := w.Client.WriteStream(fileKey, file, 0644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

// SendContent 上传字节内容
func (w *WebDAV) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	fileKey := w.fileKey(pathKey)

	if dir := path.Dir(fileKey); dir != "/" {
		_ = w.Client.MkdirAll(dir, 0755)
	}

	if err := w.Client.Write(fileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

// Delete 删除文件
func (w *WebDAV) Delete(pathKey string) error {
	if err := w.Client.Remove(w.fileKey(pathKey)); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}
