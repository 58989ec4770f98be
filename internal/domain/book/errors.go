package book

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookDuplicate 相同书名和作者的图书已存在(大小写不敏感)
	ErrBookDuplicate = apperrors.New(apperrors.ErrCodeBookDuplicate, "相同书名和作者的图书已存在")

	// ErrNotOwner 无权操作此图书(只有添加者可以修改/删除)
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "只能操作自己添加的图书")

	// ErrInvalidTitle 书名长度非法
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名长度应为1-200个字符")

	// ErrInvalidAuthor 作者长度非法
	ErrInvalidAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者长度应为1-100个字符")

	// ErrInvalidGenre 非法的图书类型
	ErrInvalidGenre = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的图书类型")

	// ErrInvalidDescription 简介长度非法
	ErrInvalidDescription = apperrors.New(apperrors.ErrCodeInvalidParams, "简介长度应为1-1000个字符")
)
