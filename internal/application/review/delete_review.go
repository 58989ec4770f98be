package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// DeleteReviewUseCase 删除书评用例
type DeleteReviewUseCase struct {
	reviewService review.Service
	publisher     mq.Publisher
}

// NewDeleteReviewUseCase 创建删除书评用例
func NewDeleteReviewUseCase(reviewService review.Service, publisher mq.Publisher) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{
		reviewService: reviewService,
		publisher:     publisher,
	}
}

// Execute 执行删除书评
// 删除后图书评分统计同步重算:最后一条书评删除时平均分归零
func (uc *DeleteReviewUseCase) Execute(ctx context.Context, reviewID, userID uint) error {
	if err := uc.reviewService.Delete(ctx, reviewID, userID); err != nil {
		return err
	}

	mq.PublishAsync(uc.publisher, mq.EventReviewDeleted, map[string]any{
		"review_id": reviewID,
	})

	return nil
}
