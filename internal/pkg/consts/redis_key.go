package consts

// 缓存键后缀为快照版本号，快照替换后旧键自然过期
const (
	DatasetOverviewKey = "dataset:overview:"
	DatasetOptionsKey  = "dataset:options:"
)
