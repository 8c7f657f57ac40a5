package service

import (
	"Trendcast/internal/pkg/util"
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrDatasetEmpty     = errors.New("数据集为空")
	ErrDatasetNotLoaded = errors.New("数据集尚未加载")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	util.ErrInvalidField: BadRequest,
	ErrDatasetEmpty:      NotFound,
	ErrDatasetNotLoaded:  InternalServerError,
	UnExpectedError:      InternalServerError,
}
