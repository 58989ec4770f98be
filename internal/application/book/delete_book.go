package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// DeleteBookUseCase 图书删除用例
// 设计说明:
// 1. 图书与其全部书评在同一事务中删除,不会留下孤儿书评
// 2. 权限校验(仅录入者本人)在领域服务内完成,同样处于事务内
// 3. 删除顺序:先书评后图书(外键语义上书评依赖图书)
type DeleteBookUseCase struct {
	bookService book.Service
	reviewRepo  review.Repository
	txManager   *mysql.TxManager
	publisher   mq.Publisher
}

// NewDeleteBookUseCase 创建图书删除用例
func NewDeleteBookUseCase(
	bookService book.Service,
	reviewRepo review.Repository,
	txManager *mysql.TxManager,
	publisher mq.Publisher,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		reviewRepo:  reviewRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// Execute 执行图书删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID, userID uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 级联删除该图书的全部书评
		if err := uc.reviewRepo.DeleteByBook(txCtx, bookID); err != nil {
			return err
		}

		// 2. 删除图书(含存在性与权限校验,失败则整体回滚)
		return uc.bookService.DeleteBook(txCtx, bookID, userID)
	})
	if err != nil {
		return err
	}

	mq.PublishAsync(uc.publisher, mq.EventBookDeleted, map[string]any{
		"book_id": bookID,
	})

	return nil
}
