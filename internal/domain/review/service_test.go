package review

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// =========================================
// 内存假仓储
// =========================================

// fakeBookRepo 图书仓储假实现,只承载评分统计字段
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(ids ...uint) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, id := range ids {
		r.books[id] = &book.Book{ID: id, Title: "Book", Author: "Author", Genre: "Fiction"}
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { panic("not used") }

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	var out []*book.Book
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) FindByTitleAuthor(ctx context.Context, title, author string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { panic("not used") }

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	panic("not used")
}

func (r *fakeBookRepo) ListFacets(ctx context.Context) (*book.Facets, error) { panic("not used") }

func (r *fakeBookRepo) UpdateRatingStats(ctx context.Context, id uint, avgRating float64, reviewCount int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.AverageRating = avgRating
	b.ReviewCount = reviewCount
	return nil
}

// fakeReviewRepo 书评仓储假实现
// Create模拟(book_id, user_id)复合唯一索引的冲突语义
type fakeReviewRepo struct {
	reviews map[uint]*Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uint]*Review), nextID: 1}
}

func (r *fakeReviewRepo) Create(ctx context.Context, rv *Review) error {
	for _, existing := range r.reviews {
		if existing.BookID == rv.BookID && existing.UserID == rv.UserID {
			return ErrReviewDuplicate
		}
	}
	rv.ID = r.nextID
	r.nextID++
	clone := *rv
	r.reviews[rv.ID] = &clone
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uint) (*Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	clone := *rv
	return &clone, nil
}

func (r *fakeReviewRepo) FindByBookUser(ctx context.Context, bookID, userID uint) (*Review, error) {
	for _, rv := range r.reviews {
		if rv.BookID == bookID && rv.UserID == userID {
			clone := *rv
			return &clone, nil
		}
	}
	return nil, ErrReviewNotFound
}

func (r *fakeReviewRepo) Update(ctx context.Context, rv *Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return ErrReviewNotFound
	}
	clone := *rv
	r.reviews[rv.ID] = &clone
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ListByBook(ctx context.Context, bookID uint) ([]*Review, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListByUser(ctx context.Context, userID uint) ([]*Review, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) DeleteByBook(ctx context.Context, bookID uint) error {
	for id, rv := range r.reviews {
		if rv.BookID == bookID {
			delete(r.reviews, id)
		}
	}
	return nil
}

func (r *fakeReviewRepo) StatsByBook(ctx context.Context, bookID uint) (*RatingStats, error) {
	var sum, count int64
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			sum += int64(rv.Rating)
			count++
		}
	}
	stats := &RatingStats{Count: count}
	if count > 0 {
		stats.Average = float64(sum) / float64(count)
	}
	return stats, nil
}

// =========================================
// 测试辅助
// =========================================

func newTestService(bookIDs ...uint) (Service, *fakeReviewRepo, *fakeBookRepo) {
	reviews := newFakeReviewRepo()
	books := newFakeBookRepo(bookIDs...)
	aggregator := NewAggregator(reviews, books)
	return NewService(reviews, books, aggregator), reviews, books
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

const validText = "这是一条长度合规的书评内容"

// =========================================
// 测试用例
// =========================================

// TestService_Create 测试发表书评
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("正常发表并重算评分", func(t *testing.T) {
		svc, _, books := newTestService(1)

		r, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)
		assert.NotZero(t, r.ID)

		b := books.books[1]
		assert.Equal(t, 4.0, b.AverageRating, "发表后平均分应同步更新")
		assert.Equal(t, 1, b.ReviewCount)
	})

	t.Run("两条书评平均分保留1位小数", func(t *testing.T) {
		svc, _, books := newTestService(1)

		_, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)
		_, err = svc.Create(ctx, 1, 11, validText, 5)
		require.NoError(t, err)

		b := books.books[1]
		assert.Equal(t, 4.5, b.AverageRating, "(4+5)/2=4.5")
		assert.Equal(t, 2, b.ReviewCount)
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, _, _ := newTestService(1)

		_, err := svc.Create(ctx, 999, 10, validText, 4)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("重复评论同一本书", func(t *testing.T) {
		svc, _, _ := newTestService(1)

		_, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)

		_, err = svc.Create(ctx, 1, 10, validText, 5)
		assert.ErrorIs(t, err, ErrReviewDuplicate)
	})

	t.Run("同一用户评论不同图书", func(t *testing.T) {
		svc, _, _ := newTestService(1, 2)

		_, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)

		_, err = svc.Create(ctx, 2, 10, validText, 5)
		assert.NoError(t, err, "一人一书一评,不同图书可以各评一条")
	})

	t.Run("内容与评分校验", func(t *testing.T) {
		svc, _, _ := newTestService(1)

		_, err := svc.Create(ctx, 1, 10, "太短", 4)
		assert.ErrorIs(t, err, ErrInvalidReviewText)

		_, err = svc.Create(ctx, 1, 10, strings.Repeat("a", 1001), 4)
		assert.ErrorIs(t, err, ErrInvalidReviewText)

		_, err = svc.Create(ctx, 1, 10, validText, 0)
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = svc.Create(ctx, 1, 10, validText, 6)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("内容长度按字符计数", func(t *testing.T) {
		svc, _, _ := newTestService(1)

		// 400个中文字符(1200字节)仍在1000字符以内,应通过
		_, err := svc.Create(ctx, 1, 10, strings.Repeat("书", 400), 4)
		assert.NoError(t, err)

		// 4个中文字符(12字节)不足10字符,应拒绝
		_, err = svc.Create(ctx, 1, 11, strings.Repeat("好", 4), 4)
		assert.ErrorIs(t, err, ErrInvalidReviewText)

		// 恰好1000个中文字符是上界
		_, err = svc.Create(ctx, 1, 12, strings.Repeat("评", 1000), 4)
		assert.NoError(t, err)

		_, err = svc.Create(ctx, 1, 13, strings.Repeat("评", 1001), 4)
		assert.ErrorIs(t, err, ErrInvalidReviewText)
	})
}

// TestService_Update 测试修改书评
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("修改评分后重算", func(t *testing.T) {
		svc, _, books := newTestService(1)
		r, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, r.ID, 10, UpdatePatch{Rating: intPtr(2)})
		require.NoError(t, err)

		assert.Equal(t, 2, updated.Rating)
		assert.Equal(t, validText, updated.ReviewText, "未提供的字段应保持原值")
		assert.Equal(t, 2.0, books.books[1].AverageRating, "修改评分后平均分应重算")
	})

	t.Run("非作者禁止修改", func(t *testing.T) {
		svc, _, _ := newTestService(1)
		r, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)

		_, err = svc.Update(ctx, r.ID, 99, UpdatePatch{Rating: intPtr(1)})
		assert.ErrorIs(t, err, ErrNotAuthor)
	})

	t.Run("补丁字段必须通过校验", func(t *testing.T) {
		svc, _, _ := newTestService(1)
		r, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)

		_, err = svc.Update(ctx, r.ID, 10, UpdatePatch{Rating: intPtr(0)})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating=0不是合法评分,不能当作\"未提供\"")

		_, err = svc.Update(ctx, r.ID, 10, UpdatePatch{ReviewText: strPtr("短")})
		assert.ErrorIs(t, err, ErrInvalidReviewText)
	})

	t.Run("书评不存在", func(t *testing.T) {
		svc, _, _ := newTestService(1)

		_, err := svc.Update(ctx, 999, 10, UpdatePatch{Rating: intPtr(3)})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

// TestService_Delete 测试删除书评
func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("删除后重算评分", func(t *testing.T) {
		svc, _, books := newTestService(1)
		r1, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)
		_, err = svc.Create(ctx, 1, 11, validText, 5)
		require.NoError(t, err)

		err = svc.Delete(ctx, r1.ID, 10)
		require.NoError(t, err)

		b := books.books[1]
		assert.Equal(t, 5.0, b.AverageRating, "删除4分书评后只剩5分")
		assert.Equal(t, 1, b.ReviewCount)
	})

	t.Run("删除最后一条书评后归零", func(t *testing.T) {
		svc, _, books := newTestService(1)
		r, err := svc.Create(ctx, 1, 10, validText, 5)
		require.NoError(t, err)

		err = svc.Delete(ctx, r.ID, 10)
		require.NoError(t, err)

		b := books.books[1]
		assert.Zero(t, b.AverageRating, "无书评时平均分应为0")
		assert.Zero(t, b.ReviewCount)
	})

	t.Run("删除后可以重新评论", func(t *testing.T) {
		svc, _, _ := newTestService(1)
		r, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, r.ID, 10))

		_, err = svc.Create(ctx, 1, 10, validText, 5)
		assert.NoError(t, err, "硬删除后(图书,用户)组合应可复用")
	})

	t.Run("非作者禁止删除", func(t *testing.T) {
		svc, _, _ := newTestService(1)
		r, err := svc.Create(ctx, 1, 10, validText, 4)
		require.NoError(t, err)

		err = svc.Delete(ctx, r.ID, 99)
		assert.ErrorIs(t, err, ErrNotAuthor)
	})
}

// TestService_ListByBook 测试图书维度书评列表
func TestService_ListByBook(t *testing.T) {
	ctx := context.Background()

	t.Run("图书不存在返回NotFound而不是空列表", func(t *testing.T) {
		svc, _, _ := newTestService(1)

		_, err := svc.ListByBook(ctx, 999)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("无书评的图书返回空列表", func(t *testing.T) {
		svc, _, _ := newTestService(1)

		list, err := svc.ListByBook(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

// TestAggregator_Recompute 测试评分聚合器
func TestAggregator_Recompute(t *testing.T) {
	ctx := context.Background()

	t.Run("平均分四舍五入保留1位小数", func(t *testing.T) {
		reviews := newFakeReviewRepo()
		books := newFakeBookRepo(1)
		aggregator := NewAggregator(reviews, books)

		// 3条书评:4+4+5 = 13/3 = 4.333... → 4.3
		for i, rating := range []int{4, 4, 5} {
			require.NoError(t, reviews.Create(ctx, NewReview(1, uint(10+i), validText, rating)))
		}

		require.NoError(t, aggregator.Recompute(ctx, 1))
		assert.Equal(t, 4.3, books.books[1].AverageRating)
		assert.Equal(t, 3, books.books[1].ReviewCount)
	})

	t.Run("图书已被删除时no-op", func(t *testing.T) {
		reviews := newFakeReviewRepo()
		books := newFakeBookRepo() // 没有图书
		aggregator := NewAggregator(reviews, books)

		err := aggregator.Recompute(ctx, 1)
		assert.NoError(t, err, "图书不存在是良性竞态,不应报错")
	})
}

// TestRound1 测试1位小数舍入
func TestRound1(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.25, 4.3}, // 四舍五入(远离零)
		{4.24, 4.2},
		{-4.25, -4.3},
		{0, 0},
		{5, 5},
	}

	for _, c := range cases {
		if got := Round1(c.in); got != c.want {
			t.Errorf("Round1(%v) = %v，期望%v", c.in, got, c.want)
		}
	}
}
