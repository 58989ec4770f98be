package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// UpdateReviewUseCase 修改书评用例
// 部分更新语义与图书更新一致:nil表示不修改
type UpdateReviewUseCase struct {
	reviewService review.Service
	publisher     mq.Publisher
}

// NewUpdateReviewUseCase 创建修改书评用例
func NewUpdateReviewUseCase(reviewService review.Service, publisher mq.Publisher) *UpdateReviewUseCase {
	return &UpdateReviewUseCase{
		reviewService: reviewService,
		publisher:     publisher,
	}
}

// UpdateReviewRequest 修改书评请求DTO
type UpdateReviewRequest struct {
	ReviewID   uint
	UserID     uint // 从JWT中提取,必须是书评作者
	ReviewText *string
	Rating     *int
}

// Execute 执行修改书评
func (uc *UpdateReviewUseCase) Execute(ctx context.Context, req UpdateReviewRequest) (*ReviewDetail, error) {
	patch := review.UpdatePatch{
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	}

	r, err := uc.reviewService.Update(ctx, req.ReviewID, req.UserID, patch)
	if err != nil {
		return nil, err
	}

	mq.PublishAsync(uc.publisher, mq.EventReviewUpdated, map[string]any{
		"review_id": r.ID,
		"book_id":   r.BookID,
		"rating":    r.Rating,
	})

	return toReviewDetail(r), nil
}
