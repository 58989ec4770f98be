package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 书评模块集成测试
// 覆盖核心闭环:发表/修改/删除书评后,图书的平均评分与书评数同步更新

const reviewText = "这是一条集成测试书评,内容长度超过十个字符"

// postReview 发表书评
func postReview(t *testing.T, token string, bookID uint, rating int) *ReviewData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/reviews", map[string]interface{}{
		"book_id":     bookID,
		"review_text": reviewText,
		"rating":      rating,
	}, token)
	require.Equal(t, 0, resp.Code, "发表书评失败: %s", resp.Message)

	var review ReviewData
	require.NoError(t, json.Unmarshal(resp.Data, &review))
	return &review
}

// getBook 查询图书详情
func getBook(t *testing.T, bookID uint) *BookData {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
	require.Equal(t, 0, resp.Code)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book))
	return &book
}

// TestReviewLifecycle 测试书评生命周期与评分重算
func TestReviewLifecycle(t *testing.T) {
	_, ownerToken := RegisterAndLogin(t, "review_owner")
	book := CreateTestBook(t, ownerToken, "Review Book")

	_, reviewer1 := RegisterAndLogin(t, "reviewer1")
	_, reviewer2 := RegisterAndLogin(t, "reviewer2")

	t.Run("发表书评后评分同步更新", func(t *testing.T) {
		postReview(t, reviewer1, book.ID, 4)

		b := getBook(t, book.ID)
		assert.Equal(t, 4.0, b.AverageRating)
		assert.Equal(t, 1, b.ReviewCount)
	})

	t.Run("第二条书评平均分保留1位小数", func(t *testing.T) {
		postReview(t, reviewer2, book.ID, 5)

		b := getBook(t, book.ID)
		assert.Equal(t, 4.5, b.AverageRating, "(4+5)/2=4.5")
		assert.Equal(t, 2, b.ReviewCount)
	})

	t.Run("重复评论同一本书应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/reviews", map[string]interface{}{
			"book_id":     book.ID,
			"review_text": reviewText,
			"rating":      3,
		}, reviewer1)
		assert.NotEqual(t, 0, resp.Code, "一人一书一评")
	})

	t.Run("修改评分后重算", func(t *testing.T) {
		// reviewer2把5分改成1分: (4+1)/2 = 2.5
		listResp := GetJSON(t, fmt.Sprintf("%s/reviews/book/%d", BaseURL, book.ID), "")
		require.Equal(t, 0, listResp.Code)

		var reviews []ReviewData
		require.NoError(t, json.Unmarshal(listResp.Data, &reviews))
		require.Len(t, reviews, 2)

		var target *ReviewData
		for i := range reviews {
			if reviews[i].Rating == 5 {
				target = &reviews[i]
			}
		}
		require.NotNil(t, target, "应能找到5分书评")

		resp := PutJSON(t, fmt.Sprintf("%s/reviews/%d", BaseURL, target.ID), map[string]interface{}{
			"rating": 1,
		}, reviewer2)
		require.Equal(t, 0, resp.Code, "修改书评失败: %s", resp.Message)

		b := getBook(t, book.ID)
		assert.Equal(t, 2.5, b.AverageRating, "(4+1)/2=2.5")
	})

	t.Run("非作者不能修改书评", func(t *testing.T) {
		listResp := GetJSON(t, fmt.Sprintf("%s/reviews/book/%d", BaseURL, book.ID), "")
		require.Equal(t, 0, listResp.Code)

		var reviews []ReviewData
		require.NoError(t, json.Unmarshal(listResp.Data, &reviews))
		require.NotEmpty(t, reviews)

		resp := PutJSON(t, fmt.Sprintf("%s/reviews/%d", BaseURL, reviews[0].ID), map[string]interface{}{
			"rating": 5,
		}, ownerToken)
		assert.NotEqual(t, 0, resp.Code, "非作者修改应该失败")
	})

	t.Run("删除书评后重算", func(t *testing.T) {
		listResp := GetJSON(t, fmt.Sprintf("%s/reviews/book/%d", BaseURL, book.ID), "")
		require.Equal(t, 0, listResp.Code)

		var reviews []ReviewData
		require.NoError(t, json.Unmarshal(listResp.Data, &reviews))

		var target *ReviewData
		for i := range reviews {
			if reviews[i].Rating == 1 {
				target = &reviews[i]
			}
		}
		require.NotNil(t, target)

		resp := DeleteJSON(t, fmt.Sprintf("%s/reviews/%d", BaseURL, target.ID), reviewer2)
		require.Equal(t, 0, resp.Code, "删除书评失败: %s", resp.Message)

		b := getBook(t, book.ID)
		assert.Equal(t, 4.0, b.AverageRating, "只剩4分书评")
		assert.Equal(t, 1, b.ReviewCount)
	})

	t.Run("删除后可以重新评论", func(t *testing.T) {
		postReview(t, reviewer2, book.ID, 3)

		b := getBook(t, book.ID)
		assert.Equal(t, 3.5, b.AverageRating, "(4+3)/2=3.5")
	})
}

// TestReviewQueries 测试书评查询接口
func TestReviewQueries(t *testing.T) {
	_, ownerToken := RegisterAndLogin(t, "query_owner")
	book := CreateTestBook(t, ownerToken, "Query Book")
	reviewerID, reviewerToken := RegisterAndLogin(t, "query_reviewer")

	review := postReview(t, reviewerToken, book.ID, 4)

	t.Run("图书维度列表嵌入作者姓名", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/reviews/book/%d", BaseURL, book.ID), "")
		require.Equal(t, 0, resp.Code)

		var reviews []ReviewData
		require.NoError(t, json.Unmarshal(resp.Data, &reviews))
		require.Len(t, reviews, 1)
		assert.Equal(t, "query_reviewer", reviews[0].UserName)
	})

	t.Run("用户维度列表嵌入图书信息", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/reviews/user/%d", BaseURL, reviewerID), "")
		require.Equal(t, 0, resp.Code)

		var reviews []ReviewData
		require.NoError(t, json.Unmarshal(resp.Data, &reviews))
		require.Len(t, reviews, 1)
		assert.Equal(t, book.Title, reviews[0].BookTitle)
	})

	t.Run("书评详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/reviews/%d", BaseURL, review.ID), "")
		require.Equal(t, 0, resp.Code)

		var detail ReviewData
		require.NoError(t, json.Unmarshal(resp.Data, &detail))
		assert.Equal(t, reviewText, detail.ReviewText)
	})

	t.Run("不存在图书的书评列表返回NotFound", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/reviews/book/99999999", "")
		assert.NotEqual(t, 0, resp.Code, "不存在的图书应返回错误而不是空列表")
	})

	t.Run("删除图书级联删除书评", func(t *testing.T) {
		resp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, book.ID), ownerToken)
		require.Equal(t, 0, resp.Code, "删除图书失败: %s", resp.Message)

		getResp := GetJSON(t, fmt.Sprintf("%s/reviews/%d", BaseURL, review.ID), "")
		assert.NotEqual(t, 0, getResp.Code, "图书删除后书评应一并删除")
	})
}
