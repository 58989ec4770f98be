package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// CreateReviewUseCase 发表书评用例
// 设计说明:
// 1. 准入校验(图书存在、未重复评论)与评分重算都在领域服务内完成
// 2. 重算是同步的:用例返回时图书的平均分已是最新值
// 3. review.created事件供下游订阅,不承载重算职责
type CreateReviewUseCase struct {
	reviewService review.Service
	publisher     mq.Publisher
}

// NewCreateReviewUseCase 创建发表书评用例
func NewCreateReviewUseCase(reviewService review.Service, publisher mq.Publisher) *CreateReviewUseCase {
	return &CreateReviewUseCase{
		reviewService: reviewService,
		publisher:     publisher,
	}
}

// CreateReviewRequest 发表书评请求DTO
type CreateReviewRequest struct {
	BookID     uint
	UserID     uint // 从JWT中提取
	ReviewText string
	Rating     int
}

// Execute 执行发表书评
func (uc *CreateReviewUseCase) Execute(ctx context.Context, req CreateReviewRequest) (*ReviewDetail, error) {
	r, err := uc.reviewService.Create(ctx, req.BookID, req.UserID, req.ReviewText, req.Rating)
	if err != nil {
		return nil, err
	}

	mq.PublishAsync(uc.publisher, mq.EventReviewCreated, map[string]any{
		"review_id": r.ID,
		"book_id":   r.BookID,
		"user_id":   r.UserID,
		"rating":    r.Rating,
	})

	return toReviewDetail(r), nil
}
