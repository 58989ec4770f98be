package book

import (
	"testing"
)

// TestListParams_Normalize 测试查询参数归一化
func TestListParams_Normalize(t *testing.T) {
	t.Run("默认值", func(t *testing.T) {
		p := ListParams{}.Normalize()

		if p.Page != DefaultPage {
			t.Errorf("期望页码%d，实际%d", DefaultPage, p.Page)
		}
		if p.Limit != DefaultLimit {
			t.Errorf("期望每页%d条，实际%d", DefaultLimit, p.Limit)
		}
		if p.SortBy != SortNewest {
			t.Errorf("期望默认排序%s，实际%s", SortNewest, p.SortBy)
		}
	})

	t.Run("越界值被钳制", func(t *testing.T) {
		p := ListParams{Page: -3, Limit: 999}.Normalize()

		if p.Page != 1 {
			t.Errorf("负数页码应钳制到1，实际%d", p.Page)
		}
		if p.Limit != MaxLimit {
			t.Errorf("超大limit应钳制到%d，实际%d", MaxLimit, p.Limit)
		}
	})

	t.Run("all哨兵值等价于不过滤", func(t *testing.T) {
		p := ListParams{Genre: "all", Author: "all"}.Normalize()

		if p.Genre != "" {
			t.Errorf("genre=all应归一化为空串，实际%q", p.Genre)
		}
		if p.Author != "" {
			t.Errorf("author=all应归一化为空串，实际%q", p.Author)
		}
	})

	t.Run("未知排序回退到默认", func(t *testing.T) {
		p := ListParams{SortBy: "price_asc"}.Normalize()

		if p.SortBy != SortNewest {
			t.Errorf("未知排序应回退到%s，实际%s", SortNewest, p.SortBy)
		}
	})
}

// TestListParams_Offset 测试分页偏移量计算
func TestListParams_Offset(t *testing.T) {
	p := ListParams{Page: 3, Limit: 10}.Normalize()

	if got := p.Offset(); got != 20 {
		t.Errorf("第3页每页10条，期望偏移20，实际%d", got)
	}
}

// TestOrderClause 测试排序SQL片段
// 每种排序都带id次级排序键，保证分页结果稳定
func TestOrderClause(t *testing.T) {
	cases := []struct {
		sortBy string
		want   string
	}{
		{SortNewest, "created_at DESC, id ASC"},
		{SortOldest, "created_at ASC, id ASC"},
		{SortRating, "average_rating DESC, id ASC"},
		{SortTitle, "title ASC, id ASC"},
		{"unknown", "created_at DESC, id ASC"},
	}

	for _, c := range cases {
		if got := OrderClause(c.sortBy); got != c.want {
			t.Errorf("OrderClause(%q) = %q，期望%q", c.sortBy, got, c.want)
		}
	}
}

// TestTotalPages 测试总页数计算(向上取整)
func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}

	for _, c := range cases {
		if got := TotalPages(c.total, c.limit); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d，期望%d", c.total, c.limit, got, c.want)
		}
	}
}

// TestIsValidGenre 测试类型枚举校验
func TestIsValidGenre(t *testing.T) {
	if !IsValidGenre("Science Fiction") {
		t.Error("Science Fiction应是合法类型")
	}
	if IsValidGenre("science fiction") {
		t.Error("类型校验应大小写敏感")
	}
	if IsValidGenre("Poetry") {
		t.Error("Poetry不在枚举内")
	}
	if IsValidGenre("") {
		t.Error("空串不是合法类型")
	}
}
