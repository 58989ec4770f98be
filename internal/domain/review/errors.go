package review

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 书评领域错误定义
var (
	// ErrReviewNotFound 书评不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "书评不存在")

	// ErrReviewDuplicate 重复书评(同一用户对同一图书只能评论一次)
	ErrReviewDuplicate = apperrors.New(apperrors.ErrCodeReviewDuplicate, "您已经评论过这本书")

	// ErrNotAuthor 无权操作此书评(只有作者可以修改/删除)
	ErrNotAuthor = apperrors.New(apperrors.ErrCodeForbidden, "只能操作自己的书评")

	// ErrInvalidReviewText 书评内容长度非法
	ErrInvalidReviewText = apperrors.New(apperrors.ErrCodeInvalidParams, "书评内容长度应为10-1000个字符")

	// ErrInvalidRating 评分非法
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须是1-5的整数")
)
