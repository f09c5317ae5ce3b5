package storage

import "errors"

// ErrNotFound 请求的记录不存在，或不属于当前用户。
// 跨用户访问一律表现为不存在，不暴露记录是否真实存在。
var ErrNotFound = errors.New("记录不存在")
