package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/viant/afs"
)

// Service извлекает текст из исходного документа
type Service struct {
	fs   afs.Service
	logf func(format string, args ...interface{})
}

// New создает новый сервис извлечения текста
func New() *Service {
	return NewWithFS(afs.New())
}

// NewWithFS создает сервис поверх заданной файловой системы для URL источников
func NewWithFS(fs afs.Service) *Service {
	return &Service{fs: fs, logf: log.Printf}
}

// Extract возвращает весь текст документа одной строкой.
// PDF читается постранично, страницы склеиваются через перевод строки;
// любой другой файл читается как UTF-8 текст. Пути со схемой (mem://, file://,
// https://) загружаются через afs.
func (s *Service) Extract(ctx context.Context, path string) (string, error) {
	isPDF := strings.ToLower(filepath.Ext(path)) == ".pdf"

	if strings.Contains(path, "://") {
		data, err := s.fs.DownloadWithURL(ctx, path)
		if err != nil {
			return "", fmt.Errorf("ошибка загрузки %s: %w", path, err)
		}
		if isPDF {
			return s.ExtractBytes(ctx, data)
		}
		return string(data), nil
	}

	if !isPDF {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения файла %s: %w", path, err)
		}
		return string(data), nil
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("ошибка открытия PDF %s: %w", path, err)
	}
	defer f.Close()

	return s.extractPages(ctx, reader)
}

// ExtractBytes извлекает текст из PDF, загруженного в память
func (s *Service) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("ошибка чтения PDF: %w", err)
	}
	return s.extractPages(ctx, reader)
}

func (s *Service) extractPages(ctx context.Context, reader *pdf.Reader) (string, error) {
	total := reader.NumPage()
	pages := make([]string, 0, total)
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			s.logf("⚠️ Страница %d пропущена: %v", i, err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	s.logf("Извлечено %d страниц", total)
	return strings.Join(pages, "\n"), nil
}

// ReadAll читает текст из произвольного источника (например, stdin)
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения текста: %w", err)
	}
	return string(data), nil
}
