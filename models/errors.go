package models

import "errors"

// ErrTransactionNotInMonth 交易不属于该月份
var ErrTransactionNotInMonth = errors.New("transaction not found in month")

// ValidationError 输入校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError 判断是否为校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrInvariantViolation 月份汇总与交易集合不一致
var ErrInvariantViolation = errors.New("month aggregates do not match its transactions")
