package review

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// Service 书评领域服务接口(准入控制)
// 设计说明:
// 1. 封装书评的准入规则:图书必须存在、一人一书一评、作者才能改删
// 2. 每次成功的写操作后显式调用聚合器重算所属图书的派生字段,
//    同一逻辑操作内同步完成,后续读不会看到过期的评分
type Service interface {
	// Create 发布书评
	// 业务规则:
	// - 图书必须存在(NotFound)
	// - (图书,用户)不能已有书评(Conflict;并发场景由唯一索引兜底)
	// - 内容10-1000字符,评分1-5整数
	Create(ctx context.Context, bookID, userID uint, reviewText string, rating int) (*Review, error)

	// Get 根据ID获取书评
	Get(ctx context.Context, id uint) (*Review, error)

	// Update 修改书评(部分更新)
	// 业务规则:只有作者本人可以修改;补丁中出现的字段必须通过校验
	Update(ctx context.Context, id, userID uint, patch UpdatePatch) (*Review, error)

	// Delete 删除书评
	// 业务规则:只有作者本人可以删除
	Delete(ctx context.Context, id, userID uint) error

	// ListByBook 查询某图书的全部书评(校验图书存在,按创建时间倒序)
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)

	// ListByUser 查询某用户的全部书评(按创建时间倒序)
	ListByUser(ctx context.Context, userID uint) ([]*Review, error)
}

// service 领域服务实现
type service struct {
	repo       Repository
	books      book.Repository
	aggregator *Aggregator
}

// NewService 创建书评领域服务
func NewService(repo Repository, books book.Repository, aggregator *Aggregator) Service {
	return &service{
		repo:       repo,
		books:      books,
		aggregator: aggregator,
	}
}

// Create 发布书评
func (s *service) Create(ctx context.Context, bookID, userID uint, reviewText string, rating int) (*Review, error) {
	// 1. 字段校验
	reviewText = strings.TrimSpace(reviewText)
	if err := validateReviewText(reviewText); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	// 2. 图书存在性检查
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, err // Repository已转换为ErrBookNotFound
	}

	// 3. 重复评论预检查(友好报错;并发重复由唯一索引兜底)
	existing, err := s.repo.FindByBookUser(ctx, bookID, userID)
	if err == nil && existing != nil {
		return nil, ErrReviewDuplicate
	}
	if err != nil && !errors.Is(err, ErrReviewNotFound) {
		return nil, err
	}

	// 4. 创建并持久化
	r := NewReview(bookID, userID, reviewText, rating)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	// 5. 同步重算图书评分
	if err := s.aggregator.Recompute(ctx, bookID); err != nil {
		return nil, err
	}

	return r, nil
}

// Get 根据ID获取书评
func (s *service) Get(ctx context.Context, id uint) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

// Update 修改书评(部分更新)
func (s *service) Update(ctx context.Context, id, userID uint, patch UpdatePatch) (*Review, error) {
	// 1. 查询书评
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 权限检查:只有作者可以修改
	if !r.IsAuthoredBy(userID) {
		return nil, ErrNotAuthor
	}

	// 3. 校验补丁中出现的字段
	if patch.ReviewText != nil {
		trimmed := strings.TrimSpace(*patch.ReviewText)
		if err := validateReviewText(trimmed); err != nil {
			return nil, err
		}
		patch.ReviewText = &trimmed
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
	}

	// 4. 应用补丁并持久化
	r.Apply(patch)
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	// 5. 同步重算图书评分(评分可能变了;没变也幂等)
	if err := s.aggregator.Recompute(ctx, r.BookID); err != nil {
		return nil, err
	}

	return r, nil
}

// Delete 删除书评
func (s *service) Delete(ctx context.Context, id, userID uint) error {
	// 1. 查询书评
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 权限检查
	if !r.IsAuthoredBy(userID) {
		return ErrNotAuthor
	}

	// 3. 删除(硬删除)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// 4. 同步重算图书评分
	return s.aggregator.Recompute(ctx, r.BookID)
}

// ListByBook 查询某图书的全部书评
func (s *service) ListByBook(ctx context.Context, bookID uint) ([]*Review, error) {
	// 图书存在性检查:不存在的图书返回NotFound而不是空列表
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.ListByBook(ctx, bookID)
}

// ListByUser 查询某用户的全部书评
func (s *service) ListByUser(ctx context.Context, userID uint) ([]*Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

// =========================================
// 辅助函数:字段校验
// =========================================

func validateReviewText(text string) error {
	// 长度按字符(rune)计数,与HTTP层binding校验口径一致
	n := utf8.RuneCountInString(text)
	if n < 10 || n > 1000 {
		return ErrInvalidReviewText
	}
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
