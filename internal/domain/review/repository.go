package review

import (
	"context"
)

// RatingStats 书评聚合统计(一次聚合读的结果)
// Average是未舍入的原始平均值,保留1位小数的舍入由聚合器负责
type RatingStats struct {
	Average float64 // 平均评分(Count=0时为0)
	Count   int64   // 书评数量
}

// Repository 书评仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建书评
	// (book_id, user_id)复合唯一索引冲突时返回ErrReviewDuplicate,
	// 并发重复提交由数据库兜底,落败方拿到Conflict而不是脏数据
	Create(ctx context.Context, review *Review) error

	// FindByID 根据ID查找书评
	FindByID(ctx context.Context, id uint) (*Review, error)

	// FindByBookUser 根据(图书,用户)查找书评(用于重复评论预检查)
	FindByBookUser(ctx context.Context, bookID, userID uint) (*Review, error)

	// Update 更新书评
	Update(ctx context.Context, review *Review) error

	// Delete 删除书评(硬删除)
	// 软删除会让复合唯一索引挡住"删除后重评",因此书评必须硬删除
	Delete(ctx context.Context, id uint) error

	// ListByBook 查询某图书的全部书评(按创建时间倒序)
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)

	// ListByUser 查询某用户的全部书评(按创建时间倒序)
	ListByUser(ctx context.Context, userID uint) ([]*Review, error)

	// DeleteByBook 删除某图书的全部书评(图书删除时级联,参与事务)
	DeleteByBook(ctx context.Context, bookID uint) error

	// StatsByBook 聚合某图书的评分统计(AVG + COUNT,一次查询)
	StatsByBook(ctx context.Context, bookID uint) (*RatingStats, error)
}
