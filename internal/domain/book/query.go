package book

// 目录查询参数与纯函数辅助
// 设计说明:
// 1. 过滤/排序/分页的"语义"集中在这里,Repository只负责把语义翻译成SQL,
//    这样查询规则可以脱离数据库做单元测试
// 2. 排序必须是确定性全序:每种排序都追加id ASC作为次级排序键,
//    保证翻页拼接结果与全量查询逐条一致(分页确定性)

// 排序方式枚举
const (
	SortNewest = "newest" // 最新添加(默认): created_at DESC
	SortOldest = "oldest" // 最早添加: created_at ASC
	SortRating = "rating" // 评分从高到低: average_rating DESC
	SortTitle  = "title"  // 书名字母序: title ASC
)

// 分页默认值与上限
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// FilterAll 过滤器哨兵值,表示"不过滤"
const FilterAll = "all"

// ListParams 目录查询参数
type ListParams struct {
	Genre  string // 类型过滤(精确匹配;空串或"all"表示不过滤)
	Author string // 作者过滤(大小写不敏感子串匹配;空串或"all"表示不过滤)
	Search string // 搜索关键词(大小写不敏感子串匹配书名或作者)
	SortBy string // 排序方式(newest/oldest/rating/title)
	Page   int    // 页码(从1开始)
	Limit  int    // 每页数量(1-50)
}

// Normalize 参数归一化
// 1. 分页默认值与范围限制(page>=1, limit∈[1,50])
// 2. 哨兵值"all"归一为空串(不过滤)
// 3. 非法排序值归一为默认排序
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Genre == FilterAll {
		p.Genre = ""
	}
	if p.Author == FilterAll {
		p.Author = ""
	}
	switch p.SortBy {
	case SortNewest, SortOldest, SortRating, SortTitle:
	default:
		p.SortBy = SortNewest
	}
	return p
}

// Offset 计算SQL偏移量(调用前需先Normalize)
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause 排序方式 → SQL ORDER BY子句
// 次级排序键id ASC保证全序确定性
func OrderClause(sortBy string) string {
	switch sortBy {
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortRating:
		return "average_rating DESC, id ASC"
	case SortTitle:
		return "title ASC, id ASC"
	default: // SortNewest
		return "created_at DESC, id ASC"
	}
}

// TotalPages 计算总页数 = ceil(total/limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}

// Facets 过滤器候选列表
// 设计说明:
// 基于整个目录计算(不受当前过滤条件影响),按字母序去重排序。
// 这样前端下拉框不会随着过滤收窄而"缩水"
type Facets struct {
	Genres  []string `json:"genres"`
	Authors []string `json:"authors"`
}
