package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookreview/internal/application/review"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	createReviewUseCase    *appreview.CreateReviewUseCase
	getReviewUseCase       *appreview.GetReviewUseCase
	updateReviewUseCase    *appreview.UpdateReviewUseCase
	deleteReviewUseCase    *appreview.DeleteReviewUseCase
	listBookReviewsUseCase *appreview.ListBookReviewsUseCase
	listUserReviewsUseCase *appreview.ListUserReviewsUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(
	createReviewUseCase *appreview.CreateReviewUseCase,
	getReviewUseCase *appreview.GetReviewUseCase,
	updateReviewUseCase *appreview.UpdateReviewUseCase,
	deleteReviewUseCase *appreview.DeleteReviewUseCase,
	listBookReviewsUseCase *appreview.ListBookReviewsUseCase,
	listUserReviewsUseCase *appreview.ListUserReviewsUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		createReviewUseCase:    createReviewUseCase,
		getReviewUseCase:       getReviewUseCase,
		updateReviewUseCase:    updateReviewUseCase,
		deleteReviewUseCase:    deleteReviewUseCase,
		listBookReviewsUseCase: listBookReviewsUseCase,
		listUserReviewsUseCase: listUserReviewsUseCase,
	}
}

// CreateReview 发表书评
// @Summary      发表书评
// @Description  对图书发表书评(每人每本限一条),图书评分统计同步更新
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "书评内容"
// @Success      201 {object} response.Response{data=dto.ReviewResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "已评论过该图书"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.createReviewUseCase.Execute(c.Request.Context(), appreview.CreateReviewRequest{
		BookID:     req.BookID,
		UserID:     userID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toReviewResponse(result))
}

// GetReview 书评详情
// @Summary      书评详情
// @Tags         书评
// @Produce      json
// @Param        id path int true "书评ID"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      404 {object} response.Response "书评不存在"
// @Router       /api/v1/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getReviewUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toReviewResponse(result))
}

// UpdateReview 修改书评
// @Summary      修改书评
// @Description  部分更新书评,仅作者本人可操作,评分统计同步重算
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Param        request body dto.UpdateReviewRequest true "更新字段(省略=不修改)"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是书评作者"
// @Failure      404 {object} response.Response "书评不存在"
// @Router       /api/v1/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.updateReviewUseCase.Execute(c.Request.Context(), appreview.UpdateReviewRequest{
		ReviewID:   id,
		UserID:     userID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toReviewResponse(result))
}

// DeleteReview 删除书评
// @Summary      删除书评
// @Description  删除书评,仅作者本人可操作,评分统计同步重算
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是书评作者"
// @Failure      404 {object} response.Response "书评不存在"
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.deleteReviewUseCase.Execute(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListBookReviews 图书书评列表
// @Summary      图书书评列表
// @Description  查询某图书的全部书评(按时间倒序,嵌入作者姓名)
// @Tags         书评
// @Produce      json
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=[]dto.BookReviewItem}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/reviews/book/{bookId} [get]
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	result, err := h.listBookReviewsUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookReviewItem, len(result))
	for i, r := range result {
		list[i] = dto.BookReviewItem{
			ReviewResponse: *toReviewResponse(&r.ReviewDetail),
			UserName:       r.UserName,
		}
	}
	response.Success(c, list)
}

// ListUserReviews 用户书评列表
// @Summary      用户书评列表
// @Description  查询某用户发表的全部书评(按时间倒序,嵌入图书信息)
// @Tags         书评
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response{data=[]dto.UserReviewItem}
// @Router       /api/v1/reviews/user/{userId} [get]
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	result, err := h.listUserReviewsUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.UserReviewItem, len(result))
	for i, r := range result {
		list[i] = dto.UserReviewItem{
			ReviewResponse: *toReviewResponse(&r.ReviewDetail),
			BookTitle:      r.BookTitle,
			BookAuthor:     r.BookAuthor,
		}
	}
	response.Success(c, list)
}

// toReviewResponse 应用层DTO → HTTP层DTO
func toReviewResponse(r *appreview.ReviewDetail) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
