package user

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排，协调领域服务与基础设施
// 2. 注册成功后发布user.registered事件（尽力而为，不影响注册结果）
type RegisterUseCase struct {
	userService user.Service
	publisher   mq.Publisher
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, publisher mq.Publisher) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		publisher:   publisher,
	}
}

// Execute 执行注册
// 返回：RegisterResponse（应用层DTO，不是领域实体）
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 1. 调用领域服务执行注册
	u, err := uc.userService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 发布领域事件
	mq.PublishAsync(uc.publisher, mq.EventUserRegistered, map[string]any{
		"user_id": u.ID,
		"email":   u.Email,
	})

	// 3. 领域实体 → 应用层DTO
	// 说明：不返回密码字段（安全考虑）
	return &RegisterResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}

// =========================================
// 应用层DTO（数据传输对象）
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
