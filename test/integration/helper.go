package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这个文件包含集成测试的通用辅助函数,将重复的代码(HTTP请求、JSON解析、
// 注册登录流程)封装成可复用的函数
//
// 运行方式:
//   docker compose up -d   # 先启动MySQL/Redis与API服务
//   go test -v ./test/integration/...

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	Description   string  `json:"description"`
	AddedBy       uint    `json:"added_by"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// BookListData 图书列表响应数据
type BookListData struct {
	List       []BookData `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Genres     []string   `json:"genres"`
	Authors    []string   `json:"authors"`
}

// ReviewData 书评响应数据
type ReviewData struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
	UserName   string `json:"user_name"`
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}

// doJSON 发送HTTP请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "POST", url, data, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "PUT", url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "GET", url, nil, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "DELETE", url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱(避免测试间冲突)
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestTitle 生成唯一的测试书名(书名+作者唯一约束)
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

// RegisterAndLogin 注册并登录,返回用户ID与Access Token
func RegisterAndLogin(t *testing.T, namePrefix string) (uint, string) {
	t.Helper()

	email := GenerateTestEmail(namePrefix)
	registerResp := PostJSON(t, BaseURL+"/users/register", map[string]string{
		"name":     namePrefix,
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	var registerData RegisterData
	require.NoError(t, json.Unmarshal(registerResp.Data, &registerData))

	loginResp := PostJSON(t, BaseURL+"/users/login", map[string]string{
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	require.NoError(t, json.Unmarshal(loginResp.Data, &loginData))
	require.NotEmpty(t, loginData.AccessToken)

	return registerData.ID, loginData.AccessToken
}

// CreateTestBook 创建一本测试图书,返回图书数据
func CreateTestBook(t *testing.T, token, titlePrefix string) *BookData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":       GenerateTestTitle(titlePrefix),
		"author":      "Test Author",
		"genre":       "Fiction",
		"description": "集成测试用图书,内容不少于十个字符",
	}, token)
	require.Equal(t, 0, resp.Code, "创建图书失败: %s", resp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book))
	return &book
}
