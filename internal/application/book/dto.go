package book

import (
	"github.com/xiebiao/bookreview/internal/domain/book"
)

// BookDetail 图书详情DTO
// 说明：评分统计（平均分、评论数）冗余在图书记录上，详情查询无需聚合
type BookDetail struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	Description   string  `json:"description"`
	AddedBy       uint    `json:"added_by"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

const timeLayout = "2006-01-02 15:04:05"

// toBookDetail 领域实体 → 应用层DTO
func toBookDetail(b *book.Book) *BookDetail {
	return &BookDetail{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		AddedBy:       b.AddedBy,
		AverageRating: b.AverageRating,
		ReviewCount:   b.ReviewCount,
		CreatedAt:     b.CreatedAt.Format(timeLayout),
		UpdatedAt:     b.UpdatedAt.Format(timeLayout),
	}
}
