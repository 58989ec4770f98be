package review

import (
	"github.com/xiebiao/bookreview/internal/domain/review"
)

// ReviewDetail 书评DTO
type ReviewDetail struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

const timeLayout = "2006-01-02 15:04:05"

// toReviewDetail 领域实体 → 应用层DTO
func toReviewDetail(r *review.Review) *ReviewDetail {
	return &ReviewDetail{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt.Format(timeLayout),
		UpdatedAt:  r.UpdatedAt.Format(timeLayout),
	}
}
