package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"exam-qa-study/internal/segment"
)

// XLSXSheet - имя листа с вопросами
const XLSXSheet = "QA"

var xlsxHeader = []interface{}{"q_num", "question", "answer_choice", "answer_block"}

// SaveXLSX сохраняет записи в таблицу: одна строка на вопрос в порядке разбора
func SaveXLSX(path string, records *segment.Records) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheet); err != nil {
		return fmt.Errorf("ошибка создания листа: %w", err)
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля: %w", err)
	}
	if err := f.SetCellStyle(XLSXSheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("ошибка применения стиля: %w", err)
	}

	for i, rec := range records.Values() {
		choice, _ := rec.Choice()
		row := []interface{}{rec.ID, rec.Question, choice, rec.AnswerBlock}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &row); err != nil {
			return fmt.Errorf("ошибка записи Q%d: %w", rec.ID, err)
		}
	}

	if err := f.SetColWidth(XLSXSheet, "B", "B", 80); err != nil {
		return err
	}
	if err := f.SetColWidth(XLSXSheet, "D", "D", 60); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}
	return nil
}
