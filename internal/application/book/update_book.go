package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// UpdateBookUseCase 图书更新用例
// 设计说明：
// 1. 部分更新语义：指针字段为nil表示"不修改"，非nil表示"改为该值"
// 2. 提供的值必须通过领域校验,空字符串会被拒绝(description最短1字符)
// 3. 仅录入者本人可修改
type UpdateBookUseCase struct {
	bookService book.Service
	publisher   mq.Publisher
}

// NewUpdateBookUseCase 创建图书更新用例
func NewUpdateBookUseCase(bookService book.Service, publisher mq.Publisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// UpdateBookRequest 更新请求DTO
type UpdateBookRequest struct {
	BookID      uint
	UserID      uint // 操作者用户ID（从JWT中提取）
	Title       *string
	Author      *string
	Genre       *string
	Description *string
}

// Execute 执行图书更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookDetail, error) {
	patch := book.UpdatePatch{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
	}

	b, err := uc.bookService.UpdateBook(ctx, req.BookID, req.UserID, patch)
	if err != nil {
		return nil, err
	}

	mq.PublishAsync(uc.publisher, mq.EventBookUpdated, map[string]any{
		"book_id": b.ID,
	})

	return toBookDetail(b), nil
}
