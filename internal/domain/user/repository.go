package user

import (
	"context"
)

// Repository 用户仓储接口
// 由domain层定义接口,infrastructure层实现(依赖倒置)
type Repository interface {
	// Create 创建用户(邮箱重复时返回ErrEmailDuplicate)
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByIDs 批量查找用户(用于书评列表嵌入作者姓名)
	// 不存在的ID直接跳过,不报错
	FindByIDs(ctx context.Context, ids []uint) ([]*User, error)

	// FindByEmail 根据邮箱查找用户(登录用)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
