package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找图书(用于书评列表嵌入书名/作者)
	// 不存在的ID直接跳过,不报错
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// FindByTitleAuthor 根据(书名,作者)查找图书
	// 大小写不敏感比较(折叠大小写后比较,不使用正则,避免转义问题)
	FindByTitleAuthor(ctx context.Context, title, author string) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	// 注意:书评的级联删除由应用层在同一事务中完成
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书目录(过滤+排序+分页)
	// 返回当前页数据和过滤后的总数
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListFacets 查询过滤器候选列表(全目录去重排序的genre/author)
	ListFacets(ctx context.Context) (*Facets, error)

	// UpdateRatingStats 写入派生字段(平均评分+书评数)
	// 图书不存在时返回ErrBookNotFound(聚合器据此做no-op处理)
	UpdateRatingStats(ctx context.Context, id uint, avgRating float64, reviewCount int) error
}
