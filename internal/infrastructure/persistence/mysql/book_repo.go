package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/book"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 把数据库特定的错误转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		AddedBy:       b.AddedBy,
		AverageRating: b.AverageRating,
		ReviewCount:   b.ReviewCount,
	}

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByIDs 批量查找图书
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// FindByTitleAuthor 根据(书名,作者)查找图书
// 大小写不敏感:两侧折叠大小写后精确比较(不使用正则)
func (r *bookRepository) FindByTitleAuthor(ctx context.Context, title, author string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Where("LOWER(title) = LOWER(?) AND LOWER(author) = LOWER(?)", title, author).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		AddedBy:       b.AddedBy,
		AverageRating: b.AverageRating,
		ReviewCount:   b.ReviewCount,
		CreatedAt:     b.CreatedAt,
	}

	// 使用Save更新所有字段
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书目录
// 过滤/排序语义来自domain/book/query.go,这里只做SQL翻译:
// - genre精确匹配
// - author/search大小写不敏感子串匹配(LOWER + LIKE,元字符已转义)
// - 每种排序都带id ASC次级排序键,保证分页确定性
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 构建查询
	query := getDB(ctx, r.db).Model(&BookModel{})

	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}
	if params.Author != "" {
		query = query.Where("LOWER(author) LIKE ?", containsPattern(params.Author))
	}
	if params.Search != "" {
		pattern := containsPattern(params.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}

	// 查询过滤后的总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 排序+分页
	err := query.
		Order(book.OrderClause(params.SortBy)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书目录失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// ListFacets 查询过滤器候选列表
// 基于全目录(不带过滤条件)去重排序,保证下拉框稳定
func (r *bookRepository) ListFacets(ctx context.Context) (*book.Facets, error) {
	facets := &book.Facets{
		Genres:  []string{},
		Authors: []string{},
	}

	db := getDB(ctx, r.db)

	err := db.Model(&BookModel{}).
		Distinct("genre").
		Order("genre ASC").
		Pluck("genre", &facets.Genres).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询类型列表失败")
	}

	err = db.Model(&BookModel{}).
		Distinct("author").
		Order("author ASC").
		Pluck("author", &facets.Authors).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}

	return facets, nil
}

// UpdateRatingStats 写入派生字段(平均评分+书评数)
// 使用UpdateColumns跳过钩子和updated_at:评分重算不算"编辑图书"
func (r *bookRepository) UpdateRatingStats(ctx context.Context, id uint, avgRating float64, reviewCount int) error {
	db := getDB(ctx, r.db)

	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"average_rating": avgRating,
			"review_count":   reviewCount,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书评分失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,也可能是值没变(MySQL对无变化UPDATE返回0行)
		// 再查一次确定原因
		var model BookModel
		if err := db.Select("id").First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		// 图书存在,说明是值未变化,属于正常情况
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		Genre:         model.Genre,
		Description:   model.Description,
		AddedBy:       model.AddedBy,
		AverageRating: model.AverageRating,
		ReviewCount:   model.ReviewCount,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
