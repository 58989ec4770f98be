package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. (Title, Author)作为业务唯一标识,大小写不敏感(应用层校验)
// 3. AddedBy关联添加图书的用户(所有权,只有添加者可修改/删除)
// 4. AverageRating/ReviewCount是派生字段,由书评聚合器重算,
//    客户端永远不能直接设置(宽进严出:实体上不提供Setter)
type Book struct {
	ID            uint
	Title         string  // 书名(1-200字符)
	Author        string  // 作者(1-100字符)
	Genre         string  // 类型(10个固定枚举值之一,见genre.go)
	Description   string  // 图书简介(1-1000字符)
	AddedBy       uint    // 添加者用户ID(关联User表)
	AverageRating float64 // 平均评分(0-5,保留1位小数,派生字段)
	ReviewCount   int     // 书评数量(派生字段)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新图书(工厂方法)
// 参数需调用方(领域服务)先完成校验;派生字段初始为0
func NewBook(title, author, genre, description string, addedBy uint) *Book {
	now := time.Now()
	return &Book{
		Title:         title,
		Author:        author,
		Genre:         genre,
		Description:   description,
		AddedBy:       addedBy,
		AverageRating: 0,
		ReviewCount:   0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdatePatch 部分更新补丁
// 设计说明:
// 使用指针表达"字段是否出现在请求中":nil表示未提供(保持原值),
// 非nil表示提供(即使是空串也会参与校验而不是被静默跳过)。
// 这修正了老版本"空值字段被跳过"的隐患
type UpdatePatch struct {
	Title       *string
	Author      *string
	Genre       *string
	Description *string
}

// Apply 应用补丁(领域行为)
// 只覆盖补丁中出现的字段,字段值校验由领域服务负责
func (b *Book) Apply(p UpdatePatch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	b.UpdatedAt = time.Now()
}

// IsOwnedBy 检查图书是否由指定用户添加
func (b *Book) IsOwnedBy(userID uint) bool {
	return b.AddedBy == userID
}
