package util

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseFollowers 解析粉丝数。无法解析、为空或为负数时返回 def；
// 字符串取前导整数部分，如 "12k" 解析为 12；超出 int 范围的值截断为 math.MaxInt
func ParseFollowers(v any, def int) int {
	switch n := v.(type) {
	case nil:
		return def
	case int:
		return nonNegative(n, def)
	case int64:
		return nonNegative(int(n), def)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return def
		}
		if n >= float64(math.MaxInt) {
			return math.MaxInt
		}
		return int(n)
	case string:
		return parseLeadingInt(n, def)
	default:
		return def
	}
}

func parseLeadingInt(s string, def int) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) && n == math.MaxInt {
		return n
	}
	if err != nil {
		return def
	}
	return nonNegative(n, def)
}

func nonNegative(n, def int) int {
	if n < 0 {
		return def
	}
	return n
}

// Paginate 返回 [start, end) 区间，越界时为空区间
func Paginate(total, page, pageSize int) (int, int) {
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return total, total
	}
	return start, min(start+pageSize, total)
}

// PtrInt64 用于将 int64 转换为 *int64
func PtrInt64(i int64) *int64 {
	return &i
}
