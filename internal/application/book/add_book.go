package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// AddBookUseCase 图书录入用例
// 设计说明：
// 1. 调用领域服务完成校验与去重（书名+作者不区分大小写唯一）
// 2. 录入成功后发布book.created事件
type AddBookUseCase struct {
	bookService book.Service
	publisher   mq.Publisher
}

// NewAddBookUseCase 创建图书录入用例
func NewAddBookUseCase(bookService book.Service, publisher mq.Publisher) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// AddBookRequest 录入请求DTO
type AddBookRequest struct {
	Title       string
	Author      string
	Genre       string
	Description string
	AddedBy     uint // 录入者用户ID（从JWT中提取）
}

// Execute 执行图书录入
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*BookDetail, error) {
	// 1. 调用领域服务
	b, err := uc.bookService.AddBook(ctx, req.Title, req.Author, req.Genre, req.Description, req.AddedBy)
	if err != nil {
		return nil, err
	}

	// 2. 发布领域事件
	mq.PublishAsync(uc.publisher, mq.EventBookCreated, map[string]any{
		"book_id": b.ID,
		"title":   b.Title,
		"author":  b.Author,
	})

	return toBookDetail(b), nil
}
