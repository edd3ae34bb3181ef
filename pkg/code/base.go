package code

// Success codes // 成功码
var (
	Success        = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	SuccessCreated = NewSuss(201, lang{en: "Created", zh_cn: "创建成功"})
)

// Common error codes // 通用错误码
var (
	ErrorServerInternal     = NewError(10000, lang{en: "Internal server error", zh_cn: "服务内部错误"})
	ErrorInvalidParams      = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFound           = NewError(10002, lang{en: "Resource not found", zh_cn: "找不到资源"})
	ErrorTooManyRequests    = NewError(10003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout     = NewError(10004, lang{en: "Request timed out", zh_cn: "请求超时"})
	ErrorNotMatchedRouter   = NewError(10005, lang{en: "Router not found", zh_cn: "路由不存在"})
)

// User & auth error codes // 用户与认证错误码
var (
	ErrorUserRegisterFailed     = NewError(20001, lang{en: "User registration failed", zh_cn: "用户注册失败"})
	ErrorUserRegisterDisabled   = NewError(20002, lang{en: "User registration is disabled", zh_cn: "用户注册未开放"})
	ErrorUserEmailExists        = NewError(20003, lang{en: "Email is already registered", zh_cn: "邮箱已被注册"})
	ErrorUserLoginFailed        = NewError(20004, lang{en: "Incorrect email or password", zh_cn: "邮箱或密码错误"})
	ErrorInvalidUserAuthToken   = NewError(20005, lang{en: "Invalid or expired auth token", zh_cn: "认证 Token 无效或已过期"})
	ErrorNotUserAuthToken       = NewError(20006, lang{en: "Auth token is missing", zh_cn: "缺少认证 Token"})
	ErrorUserGenerateTokenFailed = NewError(20007, lang{en: "Failed to generate auth token", zh_cn: "生成认证 Token 失败"})
)

// Project error codes // 项目错误码
var (
	ErrorProjectNotFound     = NewError(30001, lang{en: "Project not found", zh_cn: "项目不存在"})
	ErrorProjectSaveFailed   = NewError(30002, lang{en: "Failed to save project", zh_cn: "项目保存失败"})
	ErrorProjectLoadFailed   = NewError(30003, lang{en: "Failed to load project", zh_cn: "项目加载失败"})
	ErrorProjectDeleteFailed = NewError(30004, lang{en: "Failed to delete project", zh_cn: "项目删除失败"})
	ErrorVersionNotFound     = NewError(30005, lang{en: "Version snapshot not found", zh_cn: "版本快照不存在"})
	ErrorTemplateNotFound    = NewError(30006, lang{en: "Template not found", zh_cn: "模板不存在"})
)

// Storyboard edit error codes // 分镜编辑错误码
var (
	ErrorSceneNotFound        = NewError(31001, lang{en: "Scene not found", zh_cn: "场景不存在"})
	ErrorShotNotFound         = NewError(31002, lang{en: "Shot not found", zh_cn: "镜头不存在"})
	ErrorAnnotationNotFound   = NewError(31003, lang{en: "Annotation not found", zh_cn: "批注不存在"})
	ErrorLastSceneUndeletable = NewError(31004, lang{en: "The last scene cannot be deleted", zh_cn: "最后一个场景不可删除"})
	ErrorLastShotUndeletable  = NewError(31005, lang{en: "The last shot of a scene cannot be deleted", zh_cn: "场景的最后一个镜头不可删除"})
	ErrorInvalidReorder       = NewError(31006, lang{en: "Reorder ids are not a permutation of the existing ids", zh_cn: "重排序 id 与现有 id 不构成排列"})
	ErrorInvalidAnnotation    = NewError(31007, lang{en: "Annotation must target exactly one scene or one shot", zh_cn: "批注必须且只能指向一个场景或一个镜头"})
)

// Generation & export error codes // 生成与导出错误码
var (
	ErrorGenerateFailed     = NewError(32001, lang{en: "Storyboard generation failed", zh_cn: "分镜生成失败"})
	ErrorEmptyStoryText     = NewError(32002, lang{en: "Story text has no usable paragraphs", zh_cn: "故事文本没有可用段落"})
	ErrorImageQueueFull     = NewError(32003, lang{en: "Image generation queue is full", zh_cn: "图片生成队列已满"})
	ErrorExportFailed       = NewError(32004, lang{en: "Export failed", zh_cn: "导出失败"})
	ErrorInvalidExportType  = NewError(32005, lang{en: "Unsupported export format", zh_cn: "不支持的导出格式"})
	ErrorInvalidStorageType = NewError(32006, lang{en: "Unsupported storage type", zh_cn: "不支持的存储类型"})
	ErrorStorageFailed      = NewError(32007, lang{en: "Failed to write export artifact to storage", zh_cn: "导出产物写入存储失败"})
)
