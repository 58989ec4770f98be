package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/user"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService book.Service
	userRepo    user.Repository
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, userRepo user.Repository) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		userRepo:    userRepo,
	}
}

// GetBookResponse 详情响应DTO（附带录入者昵称）
type GetBookResponse struct {
	BookDetail
	AddedByName string `json:"added_by_name"`
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*GetBookResponse, error) {
	// 1. 查询图书
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &GetBookResponse{BookDetail: *toBookDetail(b)}

	// 2. 补充录入者昵称（录入者可能已注销，查不到不算错误）
	if u, err := uc.userRepo.FindByID(ctx, b.AddedBy); err == nil {
		resp.AddedByName = u.Name
	}

	return resp, nil
}
