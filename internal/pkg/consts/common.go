package consts

const (
	DefaultFollowers = 1000
	DefaultPageSize  = 10
	MaxPageSize      = 100
	TimelineDays     = 30
)

// 列表筛选中表示不过滤的取值
const (
	FilterAll = "all"
	FilterAny = "Any"
)
