package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// escapeLike 转义LIKE模式中的元字符(% _ \)
// 设计说明:
// 用户输入直接拼进LIKE模式会让"%"等字符改变匹配语义,
// 这里统一转义后再拼接通配符。老版本用正则做大小写不敏感匹配,
// 存在同样的注入/转义隐患,已改为LOWER()+LIKE
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// containsPattern 构建大小写不敏感的子串匹配模式
// 用法: Where("LOWER(col) LIKE ?", containsPattern(keyword))
func containsPattern(keyword string) string {
	return "%" + escapeLike(strings.ToLower(keyword)) + "%"
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 事务传递机制:TxManager把事务DB塞进context,
// 参与事务的Repository方法统一走这里取连接
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
