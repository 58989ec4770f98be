package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
)

// ListUserReviewsUseCase 用户书评列表用例
// 列表项嵌入图书的书名与作者,供"我的书评"页面直接渲染
type ListUserReviewsUseCase struct {
	reviewService review.Service
	bookRepo      book.Repository
}

// NewListUserReviewsUseCase 创建用户书评列表用例
func NewListUserReviewsUseCase(reviewService review.Service, bookRepo book.Repository) *ListUserReviewsUseCase {
	return &ListUserReviewsUseCase{
		reviewService: reviewService,
		bookRepo:      bookRepo,
	}
}

// UserReviewItem 用户书评列表项(嵌入图书信息)
type UserReviewItem struct {
	ReviewDetail
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}

// Execute 执行用户书评列表查询
// 用户不存在时返回空列表(与图书维度不同,不做存在性校验)
func (uc *ListUserReviewsUseCase) Execute(ctx context.Context, userID uint) ([]UserReviewItem, error) {
	// 1. 查询书评列表
	reviews, err := uc.reviewService.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. 批量查询图书
	bookIDs := make([]uint, 0, len(reviews))
	seen := make(map[uint]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.BookID]; !ok {
			seen[r.BookID] = struct{}{}
			bookIDs = append(bookIDs, r.BookID)
		}
	}

	books, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	// 3. 组装列表项
	list := make([]UserReviewItem, len(reviews))
	for i, r := range reviews {
		item := UserReviewItem{ReviewDetail: *toReviewDetail(r)}
		if b, ok := byID[r.BookID]; ok {
			item.BookTitle = b.Title
			item.BookAuthor = b.Author
		}
		list[i] = item
	}
	return list, nil
}
