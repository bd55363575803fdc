package errors

import (
	"errors"
	"fmt"
)

// ErrValidation 校验类错误的基错误。
// 创建/摄入路径上所有参数问题（缺失字段、非法枚举、受众载荷不匹配）
// 都通过 Invalid 包装此错误，Handler 层据此统一映射为 400。
var ErrValidation = errors.New("参数校验失败")

// Invalid 构造带具体原因的校验错误，原因需指明出问题的字段，
// 便于外部生产方（Webhook 调用者）自行纠正。
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// IsValidation 判断错误是否属于校验类
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
