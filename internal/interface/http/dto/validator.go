package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// RegisterValidators 注册自定义验证器
// 在main中调用一次,之后binding tag里即可使用bookgenre
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookgenre", validateBookGenre)
	}
}

// validateBookGenre 图书类型必须是固定枚举值之一(大小写敏感)
func validateBookGenre(fl validator.FieldLevel) bool {
	return book.IsValidGenre(fl.Field().String())
}
