package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoJudges     = errors.New("该赛事尚无评委席位")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 打分矩阵导出为 Excel (.xlsx)：行 = 队伍，列 = 评委，附合计/均分列
//   - 赛事日历导出为 iCalendar (.ics)，供"添加到日历"链接使用
//   - 导出内容以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportScoringMatrix 导出赛事打分矩阵为 Excel
	ExportScoringMatrix(ctx context.Context, eventID string) (*bytes.Buffer, string, error)
	// CalendarFeed 生成全部未取消赛事的 .ics 日历
	CalendarFeed(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportScoringMatrix — 导出打分矩阵为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 表头：| 队伍 | 项目 | <评委1> | <评委2> | ... | 合计 | 均分 |
//   - 单元格：该评委对该队伍的总分；未提交为 "-"
//   - 行序与排行榜一致（总分降序，同分按队名）

func (s *exportService) ExportScoringMatrix(ctx context.Context, eventID string) (*bytes.Buffer, string, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.Error(err))
		return nil, "", err
	}

	matrix, err := s.repo.Score.MatrixRows(ctx, eventID)
	if err != nil {
		s.logger.Error("查询打分矩阵失败", zap.Error(err))
		return nil, "", err
	}
	if len(matrix) == 0 {
		return nil, "", ErrExportNoJudges
	}

	roster, err := s.repo.Team.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("列出队伍失败", zap.Error(err))
		return nil, "", err
	}

	scoreRows, err := s.repo.Score.SubmittedScoreRows(ctx, eventID)
	if err != nil {
		s.logger.Error("查询评分明细失败", zap.Error(err))
		return nil, "", err
	}
	leaderboard := BuildLeaderboard(roster, scoreRows)

	// 评委列（按名称序，与矩阵行序一致）与单元格索引
	type judgeCol struct {
		id   string
		name string
	}
	var judges []judgeCol
	judgeSeen := make(map[string]bool)
	cellIndex := make(map[string]repository.MatrixRow) // "judgeID:teamID"
	for _, row := range matrix {
		if !judgeSeen[row.JudgeID] {
			judgeSeen[row.JudgeID] = true
			judges = append(judges, judgeCol{id: row.JudgeID, name: row.JudgeName})
		}
		cellIndex[row.JudgeID+":"+row.TeamID] = row
	}

	// 行序与排行榜一致（名册全覆盖，未被打分的队伍 total=0 排在末尾）
	type teamRow struct {
		id           string
		name         string
		projectTitle *string
		total        int
		average      *float64
	}
	teamsOrdered := make([]teamRow, 0, len(leaderboard))
	for _, entry := range leaderboard {
		teamsOrdered = append(teamsOrdered, teamRow{
			id:           entry.TeamID,
			name:         entry.Name,
			projectTitle: entry.ProjectTitle,
			total:        entry.TotalScore,
			average:      entry.AverageScore,
		})
	}

	// 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Scoring Matrix"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 28)
	for i := range judges {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetColWidth(sheetName, col, col, 16)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#500000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行（合并到最后一列 Average 为止）
	lastCol := colName(2 + len(judges) + 1)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Scoring Matrix", event.Name))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Team")
	f.SetCellValue(sheetName, cell("B", row), "Project")
	for i, j := range judges {
		f.SetCellValue(sheetName, cell(colName(2+i), row), j.name)
	}
	f.SetCellValue(sheetName, cell(colName(2+len(judges)), row), "Total")
	f.SetCellValue(sheetName, cell(colName(2+len(judges)+1), row), "Average")

	// 数据行
	row = 3
	for _, team := range teamsOrdered {
		f.SetCellValue(sheetName, cell("A", row), team.name)
		if team.projectTitle != nil {
			f.SetCellValue(sheetName, cell("B", row), *team.projectTitle)
		}
		for i, j := range judges {
			cellValue := "-"
			if m, ok := cellIndex[j.id+":"+team.id]; ok && m.SubmittedAt != nil {
				cellValue = fmt.Sprintf("%d", m.TotalScore)
			}
			f.SetCellValue(sheetName, cell(colName(2+i), row), cellValue)
		}
		f.SetCellValue(sheetName, cell(colName(2+len(judges)), row), team.total)
		if team.average != nil {
			f.SetCellValue(sheetName, cell(colName(2+len(judges)+1), row), *team.average)
		} else {
			f.SetCellValue(sheetName, cell(colName(2+len(judges)+1), row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("scoring_matrix_%s.xlsx", event.EventID)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// CalendarFeed — 赛事日历 (.ics)
// ═══════════════════════════════════════════════════════════

func (s *exportService) CalendarFeed(ctx context.Context) (*bytes.Buffer, error) {
	events, err := s.repo.Event.List(ctx, repository.EventFilter{})
	if err != nil {
		s.logger.Error("列出赛事失败", zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Judging-App//Events//EN")

	now := time.Now()
	for i := range events {
		event := &events[i]
		if event.Status == model.EventStatusCancelled {
			continue
		}
		entry := cal.AddEvent(event.EventID + "@judging-app")
		entry.SetCreatedTime(now)
		entry.SetDtStampTime(now)
		entry.SetStartAt(event.StartDate)
		entry.SetEndAt(event.EndDate)
		entry.SetSummary(event.Name)
		if event.Location != nil {
			entry.SetLocation(*event.Location)
		}
		if event.Description != nil {
			entry.SetDescription(*event.Description)
		}
	}

	return bytes.NewBufferString(cal.Serialize()), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
