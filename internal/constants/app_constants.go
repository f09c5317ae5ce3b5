package constants

const (
	// Redis键前缀
	ResumeSessionKeyPrefix  = "resume:session:"   // 编辑会话中的规范化简历
	ExtractedCacheKeyPrefix = "resume:extracted:" // 抽取结果恢复点

	// MinIO对象键前缀
	ResumeObjectPrefix = "resumes/"

	// 请求上下文中保存用户标识的键（keyauth中间件写入）
	UserIDContextKey = "user_id"
)
