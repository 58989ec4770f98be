package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
)

// ListBookReviewsUseCase 图书书评列表用例
// 设计说明:
// 1. 书评按创建时间倒序返回
// 2. 批量查询作者姓名后嵌入列表项,避免N+1查询
// 3. 作者已注销时姓名留空,书评仍然展示
type ListBookReviewsUseCase struct {
	reviewService review.Service
	userRepo      user.Repository
}

// NewListBookReviewsUseCase 创建图书书评列表用例
func NewListBookReviewsUseCase(reviewService review.Service, userRepo user.Repository) *ListBookReviewsUseCase {
	return &ListBookReviewsUseCase{
		reviewService: reviewService,
		userRepo:      userRepo,
	}
}

// BookReviewItem 图书书评列表项(嵌入作者姓名)
type BookReviewItem struct {
	ReviewDetail
	UserName string `json:"user_name"`
}

// Execute 执行图书书评列表查询
// 图书不存在时返回ErrBookNotFound(领域服务内校验)
func (uc *ListBookReviewsUseCase) Execute(ctx context.Context, bookID uint) ([]BookReviewItem, error) {
	// 1. 查询书评列表
	reviews, err := uc.reviewService.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// 2. 批量查询作者
	userIDs := make([]uint, 0, len(reviews))
	seen := make(map[uint]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
	}

	users, err := uc.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	// 3. 组装列表项
	list := make([]BookReviewItem, len(reviews))
	for i, r := range reviews {
		list[i] = BookReviewItem{
			ReviewDetail: *toReviewDetail(r),
			UserName:     names[r.UserID],
		}
	}
	return list, nil
}
