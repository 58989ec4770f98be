package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持按类型/作者过滤、关键词搜索、四种排序
// 2. 同时返回筛选面板数据（全量类型与作者列表），前端一次请求完成渲染
// 3. 列表项不含description字段(减少数据传输量)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Genre  string // 按类型过滤（"all"或空 = 不过滤）
	Author string // 按作者过滤（子串匹配，不区分大小写）
	Search string // 搜索关键词（匹配标题或作者）
	SortBy string // 排序方式(newest, oldest, rating, title)
	Page   int    // 页码(从1开始)
	Limit  int    // 每页数量(1-50,默认10)
}

// BookListItem 列表项DTO(不含description)
type BookListItem struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	CreatedAt     string  `json:"created_at"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Genres     []string       `json:"genres"`  // 筛选面板：全量类型
	Authors    []string       `json:"authors"` // 筛选面板：全量作者
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 构建查询参数（Normalize在领域服务内完成）
	params := book.ListParams{
		Genre:  req.Genre,
		Author: req.Author,
		Search: req.Search,
		SortBy: req.SortBy,
		Page:   req.Page,
		Limit:  req.Limit,
	}
	params = params.Normalize()

	// 2. 分页查询
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	// 3. 筛选面板数据（基于全量图书，不受当前过滤条件影响）
	facets, err := uc.bookService.ListFacets(ctx)
	if err != nil {
		return nil, err
	}

	// 4. 转换为DTO
	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:            b.ID,
			Title:         b.Title,
			Author:        b.Author,
			Genre:         b.Genre,
			AverageRating: b.AverageRating,
			ReviewCount:   b.ReviewCount,
			CreatedAt:     b.CreatedAt.Format(timeLayout),
		}
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: book.TotalPages(total, params.Limit),
		Genres:     facets.Genres,
		Authors:    facets.Authors,
	}, nil
}
