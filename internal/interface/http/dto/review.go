package dto

// CreateReviewRequest 发表书评请求
type CreateReviewRequest struct {
	BookID     uint   `json:"book_id" binding:"required"`
	ReviewText string `json:"review_text" binding:"required,min=10,max=1000"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
}

// UpdateReviewRequest 修改书评请求(部分更新)
// Rating使用指针:rating=0(非法值)与"未提供"必须区分开
type UpdateReviewRequest struct {
	ReviewText *string `json:"review_text" binding:"omitempty,min=10,max=1000"`
	Rating     *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// ReviewResponse 书评响应
type ReviewResponse struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// BookReviewItem 图书维度书评列表项(嵌入作者姓名)
type BookReviewItem struct {
	ReviewResponse
	UserName string `json:"user_name"`
}

// UserReviewItem 用户维度书评列表项(嵌入图书信息)
type UserReviewItem struct {
	ReviewResponse
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}
