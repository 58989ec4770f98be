package review

import (
	"context"
	"errors"
	"math"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// Aggregator 评分聚合器
// 设计说明:
// 1. 负责维护Book的派生字段(AverageRating/ReviewCount)与书评集合一致
// 2. 由书评领域服务在每次书评创建/修改/删除后"显式同步调用",
//    不用数据库钩子或事件隐式触发,依赖可见、可单测
// 3. 读-算-写三步没有跨记录事务隔离:并发写同一本书时以最后一次
//    重算为准(last-writer-wins)。重算是幂等收敛的,下一次重算会
//    自我纠正,因此这是可接受的竞态
type Aggregator struct {
	reviews Repository
	books   book.Repository
}

// NewAggregator 创建评分聚合器
func NewAggregator(reviews Repository, books book.Repository) *Aggregator {
	return &Aggregator{
		reviews: reviews,
		books:   books,
	}
}

// Recompute 重算指定图书的平均评分与书评数
// 流程:
// 1. 一次聚合读:AVG(rating) + COUNT(*)
// 2. 平均分保留1位小数(四舍五入);无书评时平均分=0,数量=0
// 3. 一次写:回填到图书记录
// 失败语义:图书已不存在时视为良性竞态(图书刚被删除),no-op返回nil
func (a *Aggregator) Recompute(ctx context.Context, bookID uint) error {
	// 1. 聚合读
	stats, err := a.reviews.StatsByBook(ctx, bookID)
	if err != nil {
		return err
	}

	// 2. 计算派生值
	avg := 0.0
	if stats.Count > 0 {
		avg = Round1(stats.Average)
	}

	// 3. 回写图书
	err = a.books.UpdateRatingStats(ctx, bookID, avg, int(stats.Count))
	if errors.Is(err, book.ErrBookNotFound) {
		// 图书在重算期间被删除:良性竞态,不是错误
		return nil
	}
	return err
}

// Round1 四舍五入保留1位小数
// math.Round是"远离零"舍入,与老版本Math.round(x*10)/10行为一致
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
