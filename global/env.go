package global

import (
	"github.com/haierkeys/storyboard-studio-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT          string
	Name          string = "Storyboard Studio Service"
	WebClientName string = "Web"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
