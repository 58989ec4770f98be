package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/review"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// reviewRepository 书评仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/review/repository.go定义的接口
// 2. (book_id,user_id)唯一索引冲突转换为ErrReviewDuplicate,
//    并发重复提交由数据库兜底
// 3. 书评硬删除(见db.go的ReviewModel说明)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建书评
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:     rv.BookID,
		UserID:     rv.UserID,
		ReviewText: rv.ReviewText,
		Rating:     rv.Rating,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// 并发重复提交:唯一索引拒绝落败方
		if isDuplicateError(err) {
			return review.ErrReviewDuplicate
		}
		return apperrors.Wrap(err, "创建书评失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找书评
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}

	return toReviewEntity(&model), nil
}

// FindByBookUser 根据(图书,用户)查找书评
func (r *reviewRepository) FindByBookUser(ctx context.Context, bookID, userID uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}

	return toReviewEntity(&model), nil
}

// Update 更新书评
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		ID:         rv.ID,
		BookID:     rv.BookID,
		UserID:     rv.UserID,
		ReviewText: rv.ReviewText,
		Rating:     rv.Rating,
		CreatedAt:  rv.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新书评失败")
	}

	rv.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除书评(硬删除)
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书评失败")
	}

	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}

	return nil
}

// ListByBook 查询某图书的全部书评(按创建时间倒序,id做次级排序键)
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书书评失败")
	}

	return toReviewEntities(models), nil
}

// ListByUser 查询某用户的全部书评(按创建时间倒序)
func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户书评失败")
	}

	return toReviewEntities(models), nil
}

// DeleteByBook 删除某图书的全部书评(级联删除,参与事务)
func (r *reviewRepository) DeleteByBook(ctx context.Context, bookID uint) error {
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Delete(&ReviewModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "级联删除书评失败")
	}
	return nil
}

// StatsByBook 聚合某图书的评分统计
// 一次查询同时取AVG和COUNT;无书评时AVG为NULL,用COALESCE归零
func (r *reviewRepository) StatsByBook(ctx context.Context, bookID uint) (*review.RatingStats, error) {
	var row struct {
		AvgRating   float64
		ReviewCount int64
	}

	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS review_count").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "聚合书评统计失败")
	}

	return &review.RatingStats{
		Average: row.AvgRating,
		Count:   row.ReviewCount,
	}, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		ReviewText: model.ReviewText,
		Rating:     model.Rating,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toReviewEntities(models []ReviewModel) []*review.Review {
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews
}
