package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	pkgerrors "inventra/backend/pkg/errors"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/model"
	"inventra/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoLogs       = pkgerrors.New(pkgerrors.KindNotFound, "所选时间范围内暂无操作日志")
	ErrExportNoItems      = pkgerrors.New(pkgerrors.KindNotFound, "暂无可导出的资产")
	ErrExportGenerateFail = pkgerrors.New(pkgerrors.KindInternal, "生成 Excel 文件失败")
)

// maxExportRows 单次导出行数上限
const maxExportRows = 10000

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportActivityLogs 按日期范围导出操作日志
	ExportActivityLogs(ctx context.Context, req *dto.ActivityLogExportRequest) (*bytes.Buffer, string, error)
	// ExportItems 按筛选条件导出在用资产清单
	ExportItems(ctx context.Context, req *dto.ItemFilterRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, now func() time.Time, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &exportService{repo: repo, loc: loc, now: now, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportActivityLogs 导出操作日志为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "操作日志"，按 created_at 倒序
//   - 列：时间 | 操作 | 实体类型 | 实体名称 | 操作者 | 角色 | 变更 | 描述
//   - 变更列为 "字段: 旧值 → 新值"，多字段换行

func (s *exportService) ExportActivityLogs(ctx context.Context, req *dto.ActivityLogExportRequest) (*bytes.Buffer, string, error) {
	from, to, err := dayRange(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return nil, "", err
	}

	logs, _, err := s.repo.ActivityLog.List(ctx,
		repository.ActivityLogFilter{StartAt: from, EndAt: to}, 0, maxExportRows)
	if err != nil {
		s.logger.Error("查询操作日志失败", zap.Error(err))
		return nil, "", err
	}
	if len(logs) == 0 {
		return nil, "", ErrExportNoLogs
	}

	headers := []string{"时间", "操作", "实体类型", "实体名称", "操作者", "角色", "变更", "描述"}
	widths := []float64{22, 16, 14, 24, 16, 10, 48, 60}

	rows := make([][]any, len(logs))
	for i := range logs {
		l := &logs[i]
		rows[i] = []any{
			l.CreatedAt.In(s.loc).Format("2006-01-02 15:04:05"),
			l.Action,
			l.EntityType,
			l.EntityName,
			l.ActorName,
			l.ActorRole,
			formatChanges(l.Changes.Data()),
			l.Description,
		}
	}

	buf, err := s.writeSheet("操作日志", headers, widths, rows)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("操作日志_%s.xlsx", s.rangeLabel(req.StartDate, req.EndDate))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportItems 导出资产清单为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportItems(ctx context.Context, req *dto.ItemFilterRequest) (*bytes.Buffer, string, error) {
	f, err := buildItemFilter(req, s.loc)
	if err != nil {
		return nil, "", err
	}

	items, _, err := s.repo.Item.List(ctx, f, 0, maxExportRows)
	if err != nil {
		s.logger.Error("查询资产列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(items) == 0 {
		return nil, "", ErrExportNoItems
	}

	headers := []string{"序列号", "名称", "型号", "分类", "楼层", "房间", "状态", "来源", "价值", "购置日期"}
	widths := []float64{16, 24, 18, 16, 12, 16, 12, 12, 12, 14}

	rows := make([][]any, len(items))
	for i := range items {
		it := &items[i]
		var catName, floorName, roomName string
		if it.Category != nil {
			catName = it.Category.Name
		}
		if it.Floor != nil {
			floorName = it.Floor.Name
		}
		if it.Room != nil {
			roomName = it.Room.Name
		}
		cost, _ := it.Cost.Float64()
		rows[i] = []any{
			it.SerialNumber,
			it.Name,
			it.ModelNumber,
			catName,
			floorName,
			roomName,
			it.Status,
			it.Source,
			cost,
			it.AcquiredDate.In(s.loc).Format(dateLayout),
		}
	}

	buf, err := s.writeSheet("资产清单", headers, widths, rows)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("资产清单_%s.xlsx", s.now().In(s.loc).Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

// writeSheet 生成单 Sheet 工作簿：第 1 行表头，其后为数据
func (s *exportService) writeSheet(sheetName string, headers []string, widths []float64, rows [][]any) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	// 表头
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	// 数据行
	for r, values := range rows {
		row := r + 2
		for c, v := range values {
			f.SetCellValue(sheetName, cell(colName(c), row), v)
		}
	}
	if len(rows) > 0 {
		f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), len(rows)+1), wrapStyle)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

func (s *exportService) rangeLabel(start, end string) string {
	switch {
	case start == "" && end == "":
		return "全部"
	case start == "":
		return "至" + end
	case end == "":
		return start + "起"
	default:
		return start + "_" + end
	}
}

// formatChanges 字段按名称排序，保证导出结果稳定
func formatChanges(cs model.ChangeSet) string {
	if len(cs) == 0 {
		return ""
	}
	fields := make([]string, 0, len(cs))
	for k := range cs {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	lines := make([]string, len(fields))
	for i, k := range fields {
		lines[i] = fmt.Sprintf("%s: %s → %s", k, changeValue(cs[k].From), changeValue(cs[k].To))
	}
	return strings.Join(lines, "\n")
}

func changeValue(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
