package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// fakeUserRepo 内存仓储,模拟邮箱UNIQUE索引的冲突语义
type fakeUserRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperrors.ErrEmailDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []uint) ([]*User, error) {
	var out []*User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// TestService_Register 测试用户注册
func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		u, err := svc.Register(ctx, "张三", "zhangsan@example.com", "Test1234")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, "张三", u.Name)
		assert.NotEqual(t, "Test1234", u.Password, "密码应存哈希而不是明文")
		assert.NoError(t, svc.ValidatePassword(u.Password, "Test1234"))
	})

	t.Run("重复邮箱", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		_, err := svc.Register(ctx, "张三", "dup@example.com", "Test1234")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "李四", "dup@example.com", "Test5678")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		for _, email := range []string{"", "not-an-email", "a@b", "a b@example.com"} {
			_, err := svc.Register(ctx, "张三", email, "Test1234")
			assert.Error(t, err, "邮箱%q应校验失败", email)
		}
	})

	t.Run("密码强度不足", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		cases := []string{
			"short1",               // 不足8位
			"onlyletters",          // 缺数字
			"12345678",             // 缺字母
			strings.Repeat("a1", 11), // 超过20位
		}
		for _, password := range cases {
			_, err := svc.Register(ctx, "张三", "pw@example.com", password)
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码%q应校验失败", password)
		}
	})

	t.Run("姓名长度校验", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		_, err := svc.Register(ctx, "   ", "name@example.com", "Test1234")
		assert.Error(t, err, "全空白姓名修剪后为空,应判非法")

		_, err = svc.Register(ctx, strings.Repeat("a", 51), "name@example.com", "Test1234")
		assert.Error(t, err)

		// 50个中文字符(150字节)按字符计数恰在上界内
		_, err = svc.Register(ctx, strings.Repeat("王", 50), "cjk@example.com", "Test1234")
		assert.NoError(t, err)
	})
}

// TestService_Login 测试用户登录
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(ctx, "张三", "login@example.com", "Test1234")
	require.NoError(t, err)

	t.Run("正常登录", func(t *testing.T) {
		u, err := svc.Login(ctx, "login@example.com", "Test1234")
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "login@example.com", "Wrong1234")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "Test1234")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
