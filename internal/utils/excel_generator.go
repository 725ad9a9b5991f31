package utils

import (
	"fmt"
	"os"
	"time"

	"isstracker/internal/models"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"
)

const (
	launchesSheet  = "Launches"
	providersSheet = "Providers"
	monthlySheet   = "Monthly"
	infoSheet      = "Info"

	dateLayout = "2006-01-02 15:04:05"
)

// CreateLaunchReport создает Excel файл: запуски, разбивка по провайдерам и месяцам
func CreateLaunchReport(filepath string, launches []models.Launch, analytics *models.LaunchAnalytics) error {
	f := excelize.NewFile()
	defer f.Close()

	// Лист по умолчанию переименовываем, чтобы не оставлять пустой Sheet1
	if err := f.SetSheetName("Sheet1", launchesSheet); err != nil {
		return err
	}

	if err := writeLaunchesSheet(f, launches); err != nil {
		return err
	}

	if analytics != nil {
		if err := writeProvidersSheet(f, analytics.LaunchesByProvider); err != nil {
			return err
		}
		if err := writeMonthlySheet(f, analytics.LaunchesByMonth); err != nil {
			return err
		}
		if err := writeInfoSheet(f, analytics); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	return f.SaveAs(filepath)
}

func writeLaunchesSheet(f *excelize.File, launches []models.Launch) error {
	headers := []string{"External ID", "Name", "Launch Date (UTC)", "Status", "Rocket", "Provider", "Launch Site", "Favorite"}
	if err := writeHeader(f, launchesSheet, headers); err != nil {
		return err
	}

	for rowIdx, launch := range launches {
		rowNum := rowIdx + 2 // Заголовок в первой строке

		launchDate := "TBD"
		if launch.LaunchDate != nil {
			launchDate = launch.LaunchDate.UTC().Format(dateLayout)
		}

		row := []interface{}{
			launch.ExternalID,
			launch.Name,
			launchDate,
			string(launch.Status),
			deref(launch.RocketName),
			deref(launch.Provider),
			deref(launch.LaunchSite),
			launch.IsFavorite,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(launchesSheet, cell, &row); err != nil {
			return err
		}
	}

	// Подсветка неудачных запусков
	failedRule := []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: "==",
			Value:    `"Failed"`,
			Format:   getConditionalFormatStyle(f, "#FFCCCC"),
		},
	}
	if len(launches) > 0 {
		rng := fmt.Sprintf("D2:D%d", len(launches)+1)
		if err := f.SetConditionalFormat(launchesSheet, rng, failedRule); err != nil {
			return err
		}
	}

	return setColumnWidths(f, launchesSheet, len(headers), 24)
}

func writeProvidersSheet(f *excelize.File, providers []models.ProviderStat) error {
	if _, err := f.NewSheet(providersSheet); err != nil {
		return err
	}
	if err := writeHeader(f, providersSheet, []string{"Provider", "Launches", "Share (%)"}); err != nil {
		return err
	}

	for i, p := range providers {
		row := []interface{}{p.Provider, p.Count, p.Percentage}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(providersSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(providers) > 0 {
		last := len(providers) + 1
		chart := &excelize.Chart{
			Type: excelize.Bar,
			Series: []excelize.ChartSeries{
				{
					Name:       "Launches",
					Categories: fmt.Sprintf("%s!$A$2:$A$%d", providersSheet, last),
					Values:     fmt.Sprintf("%s!$B$2:$B$%d", providersSheet, last),
				},
			},
			Title: []excelize.RichTextRun{
				{
					Text: "Launches by Provider",
				},
			},
			XAxis: excelize.ChartAxis{
				MajorGridLines: true,
			},
			YAxis: excelize.ChartAxis{
				MajorGridLines: true,
			},
			Dimension: excelize.ChartDimension{
				Width:  600,
				Height: 400,
			},
		}
		if err := f.AddChart(providersSheet, "E2", chart); err != nil {
			return err
		}
	}

	return setColumnWidths(f, providersSheet, 3, 28)
}

func writeMonthlySheet(f *excelize.File, months []models.MonthlyStat) error {
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return err
	}
	if err := writeHeader(f, monthlySheet, []string{"Month", "Year", "Launches"}); err != nil {
		return err
	}

	for i, m := range months {
		row := []interface{}{m.Month, m.Year, m.Count}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(monthlySheet, cell, &row); err != nil {
			return err
		}
	}

	if len(months) > 1 {
		last := len(months) + 1
		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{
				{
					Name:       "Launches",
					Categories: fmt.Sprintf("%s!$A$2:$A$%d", monthlySheet, last),
					Values:     fmt.Sprintf("%s!$C$2:$C$%d", monthlySheet, last),
				},
			},
			Title: []excelize.RichTextRun{
				{
					Text: "Launches per Month",
				},
			},
			Dimension: excelize.ChartDimension{
				Width:  600,
				Height: 400,
			},
		}
		if err := f.AddChart(monthlySheet, "E2", chart); err != nil {
			return err
		}
	}

	return setColumnWidths(f, monthlySheet, 3, 14)
}

func writeInfoSheet(f *excelize.File, analytics *models.LaunchAnalytics) error {
	if _, err := f.NewSheet(infoSheet); err != nil {
		return err
	}

	// Порядок строк фиксирован, поэтому срез, а не map
	metadata := []struct {
		key   string
		value interface{}
	}{
		{"Report Generated", analytics.GeneratedAt.UTC().Format(dateLayout)},
		{"Total Launches", analytics.TotalLaunches},
		{"Upcoming", analytics.UpcomingLaunches},
		{"Successful", analytics.SuccessfulLaunches},
		{"Failed", analytics.FailedLaunches},
		{"TBD", analytics.TbdLaunches},
		{"Next 7 Days", analytics.LaunchesNext7Days},
		{"Previous 7 Days", analytics.LaunchesPrevious7Days},
		{"Most Active Provider", analytics.MostActiveProvider},
		{"Average per Month", analytics.AverageLaunchesPerMonth},
	}

	for i, m := range metadata {
		row := i + 1
		if err := f.SetCellValue(infoSheet, fmt.Sprintf("A%d", row), m.key); err != nil {
			return err
		}
		if err := f.SetCellValue(infoSheet, fmt.Sprintf("B%d", row), m.value); err != nil {
			return err
		}
	}

	return setColumnWidths(f, infoSheet, 2, 26)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setColumnWidths(f *excelize.File, sheet string, columns int, width float64) error {
	for i := 1; i <= columns; i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		if err := f.SetColWidth(sheet, colName, colName, width); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// getConditionalFormatStyle создает стиль для условного форматирования
func getConditionalFormatStyle(f *excelize.File, color string) *int {
	style, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}

// SaveAsJSON сохраняет данные в JSON файл с отступами
func SaveAsJSON(filepath string, data interface{}) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(filepath, payload, 0644)
}

// ReportTimestamp - суффикс имени файла отчета
func ReportTimestamp(t time.Time) string {
	return t.UTC().Format("20060102_150405")
}
