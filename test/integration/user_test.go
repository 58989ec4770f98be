package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 用户模块集成测试
//
// 集成测试使用真实的数据库和Redis,验证完整的API流程:
// Handler → UseCase → Service → Repository → Database

// TestUserRegister 测试用户注册功能
func TestUserRegister(t *testing.T) {
	t.Run("正常注册", func(t *testing.T) {
		email := GenerateTestEmail("normal_user")
		resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
			"name":     "测试用户",
			"email":    email,
			"password": "Test1234",
		}, "")

		assert.Equal(t, 0, resp.Code, "注册应该成功")

		var data RegisterData
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		assert.NotZero(t, data.ID, "用户ID应该大于0")
		assert.Equal(t, email, data.Email)
		assert.Equal(t, "测试用户", data.Name)
	})

	t.Run("重复邮箱注册应失败", func(t *testing.T) {
		email := GenerateTestEmail("duplicate_user")
		req := map[string]string{
			"name":     "测试用户1",
			"email":    email,
			"password": "Test1234",
		}

		resp1 := PostJSON(t, BaseURL+"/users/register", req, "")
		require.Equal(t, 0, resp1.Code, "第一次注册应该成功")

		req["name"] = "测试用户2"
		resp2 := PostJSON(t, BaseURL+"/users/register", req, "")

		assert.NotEqual(t, 0, resp2.Code, "重复邮箱注册应该失败")
		assert.Contains(t, resp2.Message, "邮箱", "错误信息应该提示邮箱相关")
	})

	t.Run("弱密码应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
			"name":     "测试用户",
			"email":    GenerateTestEmail("weak_pw"),
			"password": "short",
		}, "")

		assert.NotEqual(t, 0, resp.Code, "弱密码注册应该失败")
	})

	t.Run("非法邮箱应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
			"name":     "测试用户",
			"email":    "not-an-email",
			"password": "Test1234",
		}, "")

		assert.NotEqual(t, 0, resp.Code, "非法邮箱注册应该失败")
	})
}

// TestUserLoginLogout 测试登录与登出
func TestUserLoginLogout(t *testing.T) {
	email := GenerateTestEmail("login_user")
	registerResp := PostJSON(t, BaseURL+"/users/register", map[string]string{
		"name":     "登录测试",
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, registerResp.Code)

	t.Run("正常登录", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")
		require.Equal(t, 0, resp.Code, "登录应该成功")

		var data LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.AccessToken)
		assert.NotEmpty(t, data.RefreshToken)
	})

	t.Run("密码错误", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Wrong1234",
		}, "")
		assert.NotEqual(t, 0, resp.Code, "错误密码登录应该失败")
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		loginResp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")
		require.Equal(t, 0, loginResp.Code)

		var data LoginData
		require.NoError(t, json.Unmarshal(loginResp.Data, &data))

		logoutResp := PostJSON(t, BaseURL+"/users/logout", nil, data.AccessToken)
		assert.Equal(t, 0, logoutResp.Code, "登出应该成功")

		// 黑名单中的Token不能继续使用
		retryResp := PostJSON(t, BaseURL+"/users/logout", nil, data.AccessToken)
		assert.NotEqual(t, 0, retryResp.Code, "登出后的Token应该失效")
	})
}
