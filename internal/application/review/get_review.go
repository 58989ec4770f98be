package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
)

// GetReviewUseCase 书评详情查询用例
type GetReviewUseCase struct {
	reviewService review.Service
}

// NewGetReviewUseCase 创建书评详情查询用例
func NewGetReviewUseCase(reviewService review.Service) *GetReviewUseCase {
	return &GetReviewUseCase{reviewService: reviewService}
}

// Execute 执行详情查询
func (uc *GetReviewUseCase) Execute(ctx context.Context, id uint) (*ReviewDetail, error) {
	r, err := uc.reviewService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReviewDetail(r), nil
}
