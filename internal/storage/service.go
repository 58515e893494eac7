package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"exam-qa-study/internal/segment"
)

// SaveRecords сохраняет записи в JSON файл. Ключи - номера вопросов в порядке
// разбора, не-ASCII символы пишутся как есть.
func SaveRecords(path string, records *segment.Records) error {
	jsonData, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записей: %w", err)
	}

	// Создаем директорию если её нет
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
		}
	}

	err = os.WriteFile(path, jsonData, 0644)
	if err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}

	return nil
}

// LoadRecords загружает записи из JSON файла с сохранением порядка ключей
func LoadRecords(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	records := segment.NewIDMap[segment.Record]()
	err = json.Unmarshal(data, records)
	if err != nil {
		return nil, fmt.Errorf("ошибка десериализации JSON: %w", err)
	}

	return &Export{Path: path, Records: records}, nil
}

// SaveJS оборачивает JSON экспорт в скрипт для статического просмотрщика
func SaveJS(jsonPath, jsPath, global string) error {
	if global == "" {
		global = DefaultJSGlobal
	}

	export, err := LoadRecords(jsonPath)
	if err != nil {
		return err
	}

	jsonData, err := encodeCompact(export.Records)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записей: %w", err)
	}

	var js bytes.Buffer
	js.WriteString("/* auto-generated */\n")
	js.WriteString(global)
	js.WriteString(" = ")
	js.Write(jsonData)
	js.WriteString(";\n")

	err = os.WriteFile(jsPath, js.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", jsPath, err)
	}

	return nil
}

func encodeRecords(records *segment.Records) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCompact(records *segment.Records) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
