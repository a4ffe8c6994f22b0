// Package validator 注册自定义校验规则到gin的binding引擎
package validator

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register 注册自定义校验tag，启动时调用一次
//
//	isbn:    ISBN-10或ISBN-13（允许连字符和空格）
//	notblank: 去除首尾空白后非空
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin binding引擎不是go-playground/validator")
	}
	return RegisterTo(v)
}

// RegisterTo 注册自定义校验tag到指定的Validate实例
func RegisterTo(v *validator.Validate) error {
	if err := v.RegisterValidation("isbn", func(fl validator.FieldLevel) bool {
		return IsISBN(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// NormalizeISBN 去除连字符和空格，X统一为大写
func NormalizeISBN(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '-' || r == ' ':
			continue
		case r == 'x':
			b.WriteRune('X')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsISBN 校验ISBN-10/ISBN-13格式（仅校验位数和字符，不校验校验位）
// ISBN-10最后一位允许为X
func IsISBN(s string) bool {
	isbn := NormalizeISBN(s)
	switch len(isbn) {
	case 10:
		for i, r := range isbn {
			if r >= '0' && r <= '9' {
				continue
			}
			if r == 'X' && i == 9 {
				continue
			}
			return false
		}
		return true
	case 13:
		for _, r := range isbn {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		return false
	}
}
