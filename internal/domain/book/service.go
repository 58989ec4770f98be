package book

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则校验(唯一性、所有权)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// AddBook 添加图书
	// 业务规则:
	// - 书名1-200字符,作者1-100字符,简介1-1000字符
	// - 类型必须是10个固定枚举值之一
	// - (书名,作者)不能与已有图书重复(大小写不敏感)
	AddBook(ctx context.Context, title, author, genre, description string, addedBy uint) (*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息(部分更新)
	// 业务规则:
	// - 只有添加者本人可以修改
	// - 补丁中出现的字段必须通过校验(空值不再被静默跳过)
	// - 书名或作者变化时,重新校验(书名,作者)唯一性
	UpdateBook(ctx context.Context, id, userID uint, patch UpdatePatch) (*Book, error)

	// DeleteBook 删除图书
	// 业务规则:只有添加者本人可以删除
	// 书评级联删除由应用层编排(见application/book/delete_book.go)
	DeleteBook(ctx context.Context, id, userID uint) error

	// ListBooks 分页查询图书目录
	// 公开接口,不需要权限校验
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListFacets 查询过滤器候选列表
	ListFacets(ctx context.Context) (*Facets, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 添加图书
func (s *service) AddBook(ctx context.Context, title, author, genre, description string, addedBy uint) (*Book, error) {
	// 1. 字段校验
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	description = strings.TrimSpace(description)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if !IsValidGenre(genre) {
		return nil, ErrInvalidGenre
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	// 2. 唯一性检查:(书名,作者)大小写不敏感
	existing, err := s.repo.FindByTitleAuthor(ctx, title, author)
	if err == nil && existing != nil {
		return nil, ErrBookDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}

	// 3. 创建图书实体并持久化
	b := NewBook(title, author, genre, description, addedBy)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息(部分更新)
func (s *service) UpdateBook(ctx context.Context, id, userID uint, patch UpdatePatch) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 权限检查:只有添加者可以修改
	if !b.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}

	// 3. 校验补丁中出现的字段
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if err := validateTitle(trimmed); err != nil {
			return nil, err
		}
		patch.Title = &trimmed
	}
	if patch.Author != nil {
		trimmed := strings.TrimSpace(*patch.Author)
		if err := validateAuthor(trimmed); err != nil {
			return nil, err
		}
		patch.Author = &trimmed
	}
	if patch.Genre != nil && !IsValidGenre(*patch.Genre) {
		return nil, ErrInvalidGenre
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		if err := validateDescription(trimmed); err != nil {
			return nil, err
		}
		patch.Description = &trimmed
	}

	// 4. 书名或作者变化时,重新校验唯一性
	// 用"补丁值或原值"组合出更新后的(书名,作者),检查是否与其他图书冲突
	if patch.Title != nil || patch.Author != nil {
		checkTitle := b.Title
		checkAuthor := b.Author
		if patch.Title != nil {
			checkTitle = *patch.Title
		}
		if patch.Author != nil {
			checkAuthor = *patch.Author
		}

		existing, err := s.repo.FindByTitleAuthor(ctx, checkTitle, checkAuthor)
		if err == nil && existing != nil && existing.ID != b.ID {
			return nil, ErrBookDuplicate
		}
		if err != nil && !errors.Is(err, ErrBookNotFound) {
			return nil, err
		}
	}

	// 5. 应用补丁并持久化
	b.Apply(patch)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id, userID uint) error {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 权限检查
	if !b.IsOwnedBy(userID) {
		return ErrNotOwner
	}

	// 3. 执行删除(软删除)
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书目录
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params.Normalize())
}

// ListFacets 查询过滤器候选列表
func (s *service) ListFacets(ctx context.Context) (*Facets, error) {
	return s.repo.ListFacets(ctx)
}

// =========================================
// 辅助函数:字段校验
// =========================================

// 长度统一按字符(rune)计数,与HTTP层binding校验口径一致

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > 200 {
		return ErrInvalidTitle
	}
	return nil
}

func validateAuthor(author string) error {
	n := utf8.RuneCountInString(author)
	if n < 1 || n > 100 {
		return ErrInvalidAuthor
	}
	return nil
}

func validateDescription(description string) error {
	n := utf8.RuneCountInString(description)
	if n < 1 || n > 1000 {
		return ErrInvalidDescription
	}
	return nil
}
