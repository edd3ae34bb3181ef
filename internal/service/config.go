package service

// UserConfig 用户相关配置
type UserConfig struct {
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"` // 是否开放注册
}

// GeneratorConfig 生成管线配置
type GeneratorConfig struct {
	ProviderURL        string `yaml:"provider-url"`                                         // 真实图像服务地址，空则只用占位图
	ProviderTimeoutSec int    `yaml:"provider-timeout-sec" default:"15"`                    // 单次请求超时
	PlaceholderBaseURL string `yaml:"placeholder-base-url" default:"https://placehold.co"`  // 占位图服务
	PromptMaxLen       int    `yaml:"prompt-max-len" default:"80"`                          // 占位图 URL 中提示词截断长度
}

// ExportServiceConfig 导出相关配置
type ExportServiceConfig struct {
	MaxVersionsPerProject int `yaml:"max-versions-per-project" default:"50"` // 单项目版本快照上限
}

// ServiceConfig 业务层配置聚合
type ServiceConfig struct {
	User      UserConfig          `yaml:"user"`
	Generator GeneratorConfig     `yaml:"generator"`
	Export    ExportServiceConfig `yaml:"export"`
}
