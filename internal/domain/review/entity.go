package review

import (
	"time"
)

// Review 书评实体(聚合根)
// DDD设计说明:
// 1. (BookID, UserID)是业务唯一标识:一个用户对一本书只能有一条书评,
//    数据库层用复合唯一索引兜底并发场景
// 2. 只有作者本人可以修改/删除(所有权,见IsAuthoredBy)
// 3. 任何书评的创建/修改/删除都必须同步触发所属图书的评分重算
type Review struct {
	ID         uint
	BookID     uint   // 所评图书ID
	UserID     uint   // 作者用户ID
	ReviewText string // 书评内容(10-1000字符)
	Rating     int    // 评分(1-5的整数)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewReview 创建新书评(工厂方法)
// 参数需调用方(领域服务)先完成校验
func NewReview(bookID, userID uint, reviewText string, rating int) *Review {
	now := time.Now()
	return &Review{
		BookID:     bookID,
		UserID:     userID,
		ReviewText: reviewText,
		Rating:     rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UpdatePatch 部分更新补丁
// 指针表达"字段是否出现在请求中":nil保持原值,非nil参与校验后覆盖。
// 老版本把零值字段静默跳过,导致rating无法走统一代码路径,这里改为
// 显式的出现语义
type UpdatePatch struct {
	ReviewText *string
	Rating     *int
}

// Apply 应用补丁(领域行为)
func (r *Review) Apply(p UpdatePatch) {
	if p.ReviewText != nil {
		r.ReviewText = *p.ReviewText
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	r.UpdatedAt = time.Now()
}

// IsAuthoredBy 检查书评是否由指定用户撰写
func (r *Review) IsAuthoredBy(userID uint) bool {
	return r.UserID == userID
}
