package book

// Genres 图书类型枚举(闭集,10个固定值)
// 设计说明:
// 1. 顺序即展示顺序,与前端下拉框保持一致
// 2. 枚举外的值在校验边界被拒绝,核心逻辑不再二次判断
var Genres = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Romance",
	"Science Fiction",
	"Fantasy",
	"Biography",
	"History",
	"Self-Help",
	"Thriller",
}

// IsValidGenre 判断是否为合法的图书类型
func IsValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}
