package dto

// AddBookRequest 图书录入请求
// bookgenre是自定义验证器,校验类型是否属于10个固定枚举值(见validator.go)
type AddBookRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Author      string `json:"author" binding:"required,min=1,max=100"`
	Genre       string `json:"genre" binding:"required,bookgenre"`
	Description string `json:"description" binding:"required,min=1,max=1000"`
}

// UpdateBookRequest 图书更新请求(部分更新)
// 说明：指针字段区分"未提供"(nil)与"显式提供"(含空字符串)
// omitempty保证nil字段跳过校验,非nil字段必须通过校验
type UpdateBookRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Author      *string `json:"author" binding:"omitempty,min=1,max=100"`
	Genre       *string `json:"genre" binding:"omitempty,bookgenre"`
	Description *string `json:"description" binding:"omitempty,min=1,max=1000"`
}

// ListBooksQuery 列表查询参数(query string)
type ListBooksQuery struct {
	Genre  string `form:"genre"`
	Author string `form:"author"`
	Search string `form:"search"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=newest oldest rating title"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// BookResponse 图书详情响应
type BookResponse struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	Description   string  `json:"description"`
	AddedBy       uint    `json:"added_by"`
	AddedByName   string  `json:"added_by_name,omitempty"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// BookListItem 列表项(不含description)
type BookListItem struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	CreatedAt     string  `json:"created_at"`
}

// BookListResponse 列表响应(含分页信息与筛选面板)
type BookListResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Genres     []string       `json:"genres"`
	Authors    []string       `json:"authors"`
}
