package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/storyboard-studio-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath       string `yaml:"save-path" default:"storage/exports"`
	CustomPath     string `yaml:"custom-path"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	BaseURL        string `yaml:"base-url"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/exports"
	}
	return &LocalFS{Config: conf}, nil
}

// SendFile writes the stream under the save path and returns the access key
// SendFile 将流写入保存路径并返回访问键
func (l *LocalFS) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dst := filepath.Join(l.Config.SavePath, l.Config.CustomPath, pathKey)

	if err := fileurl.CreatePath(dst, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dst, modTime, modTime)
	}

	return l.accessKey(pathKey), nil
}

// SendContent writes raw bytes under the save path
// SendContent 将字节内容写入保存路径
func (l *LocalFS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	dst := filepath.Join(l.Config.SavePath, l.Config.CustomPath, pathKey)

	if err := fileurl.CreatePath(dst, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dst, modTime, modTime)
	}

	return l.accessKey(pathKey), nil
}

func (l *LocalFS) Delete(pathKey string) error {
	dst := filepath.Join(l.Config.SavePath, l.Config.CustomPath, pathKey)
	err := os.Remove(dst)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}

// accessKey the key handed back to callers; served over httpfs when enabled
// accessKey 返回给调用方的键；开启 httpfs 时经由其对外提供
func (l *LocalFS) accessKey(pathKey string) string {
	key := filepath.ToSlash(filepath.Join(l.Config.CustomPath, pathKey))
	if l.Config.BaseURL != "" {
		return fileurl.PathSuffixCheckAdd(l.Config.BaseURL, "/") + key
	}
	return key
}
