package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidField 参数校验失败，错误信息带上首个失败字段
var ErrInvalidField = errors.New("参数错误")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("%w: 字段 [%s] 校验失败，规则 [%s]",
				ErrInvalidField,
				firstError.Field(),
				firstError.Tag())
		}
		return err
	}
	return nil
}
