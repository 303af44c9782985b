package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pkgerrors "inventra/backend/pkg/errors"
	"inventra/backend/pkg/metrics"
)

const (
	timeLayout = "2006-01-02T15:04:05Z07:00"
	dateLayout = "2006-01-02"
)

// ── 通用业务错误 ──

var (
	ErrInvalidDate      = pkgerrors.New(pkgerrors.KindInvalidArgument, "日期格式应为 YYYY-MM-DD")
	ErrInvalidDateRange = pkgerrors.New(pkgerrors.KindInvalidArgument, "开始日期不能晚于结束日期")
)

// Actor 操作者快照，来自已认证的 Token
type Actor struct {
	ID   string
	Name string
	Role string
}

// ── 日期 ──

// parseDay 按服务器时区解析 YYYY-MM-DD，返回当天零点
func parseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// endOfDay 返回当天最后一毫秒（23:59:59.999），用作闭区间上界
func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Millisecond)
}

// dayRange 解析可选的起止日期
// 仅有开始日期时无上界；结束日期包含当天
func dayRange(start, end string, loc *time.Location) (from, to *time.Time, err error) {
	if start != "" {
		t, err := parseDay(start, loc)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if end != "" {
		t, err := parseDay(end, loc)
		if err != nil {
			return nil, nil, err
		}
		e := endOfDay(t)
		to = &e
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ErrInvalidDateRange
	}
	return from, to, nil
}

// lenientPage 解析页码，非数字或非正数按第 1 页处理
func lenientPage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// ── 审计 ──

// auditor 在业务变更提交后写入操作日志
// 写入失败只记录错误日志和指标，不影响业务结果
type auditor struct {
	logs   ActivityLogService
	logger *zap.Logger
}

func (a auditor) record(ctx context.Context, entries ...AuditEntry) {
	if len(entries) == 0 || a.logs == nil {
		return
	}

	var err error
	if len(entries) == 1 {
		err = a.logs.Record(ctx, &entries[0])
	} else {
		err = a.logs.RecordBatch(ctx, entries)
	}
	if err == nil {
		return
	}

	first := entries[0]
	a.logger.Error("审计日志写入失败",
		zap.String("action", first.Action),
		zap.String("entity_type", first.EntityType),
		zap.String("entity_id", first.EntityID),
		zap.String("actor_id", first.Actor.ID),
		zap.Int("entries", len(entries)),
		zap.Error(err),
	)
	for _, e := range entries {
		metrics.AuditWriteFailures.WithLabelValues(e.EntityType).Inc()
	}
}

func strPtr(s string) *string { return &s }

func validID(id string) bool { return uuid.Validate(id) == nil }
