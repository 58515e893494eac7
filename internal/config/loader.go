package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load загружает конфигурацию из YAML файла поверх значений по умолчанию.
// Отсутствующий файл не является ошибкой.
func Load(filename string) (*Config, error) {
	config := Default()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	// Валидация конфигурации
	err = validateConfig(config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return config, nil
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *Config) error {
	if config.Parse.Workers < 0 {
		return fmt.Errorf("parse.workers не может быть отрицательным")
	}

	switch config.Progress.Driver {
	case DriverFile:
		if config.Progress.Path == "" {
			return fmt.Errorf("progress.path обязателен для драйвера file")
		}
	case DriverSQLite, DriverPostgres:
		if config.Progress.DSN == "" {
			return fmt.Errorf("progress.dsn обязателен для драйвера %s", config.Progress.Driver)
		}
	default:
		return fmt.Errorf("неизвестный progress.driver: %q", config.Progress.Driver)
	}

	if config.Study.StartQuestion < 0 {
		return fmt.Errorf("study.start_question не может быть отрицательным")
	}

	if config.Export.JSGlobal == "" {
		return fmt.Errorf("export.js_global не может быть пустым")
	}

	if config.Server.Addr == "" {
		return fmt.Errorf("server.addr не может быть пустым")
	}

	return nil
}
