package storage

import "exam-qa-study/internal/segment"

// DefaultJSGlobal - глобальная переменная, в которую веб-просмотрщик ждет данные
const DefaultJSGlobal = "window.__QA__"

// Export представляет сохраненный набор вопросов
type Export struct {
	Path    string
	Records *segment.Records
}
