package segment

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LocateHeaders находит все заголовки вопросов в порядке следования в тексте.
// Повторяющиеся номера не схлопываются.
func LocateHeaders(text string) []Header {
	matches := headerRe.FindAllStringSubmatchIndex(text, -1)
	headers := make([]Header, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		headers = append(headers, Header{ID: id, Start: m[0]})
	}
	return headers
}

// Windows режет текст на окна между соседними заголовками.
// Текст до первого заголовка отбрасывается, окна не обрезаются.
func Windows(text string, headers []Header) []Span {
	spans := make([]Span, 0, len(headers))
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].Start
		}
		spans = append(spans, Span{ID: h.ID, Start: h.Start, End: end, Text: text[h.Start:end]})
	}
	return spans
}

// SplitSpans возвращает обрезанные фрагменты по номеру вопроса.
// При повторе номера побеждает последний фрагмент.
func SplitSpans(text string, headers []Header) *IDMap[string] {
	out := NewIDMap[string]()
	for _, span := range Windows(text, headers) {
		out.Set(span.ID, strings.TrimSpace(span.Text))
	}
	return out
}

// ParseAll разбирает весь документ последовательно
func ParseAll(text string) *Records {
	spans := SplitSpans(text, LocateHeaders(text))
	out := NewIDMap[Record]()
	for _, id := range spans.IDs() {
		span, _ := spans.Get(id)
		out.Set(id, ParseSection(id, span))
	}
	return out
}

// Engine разбирает фрагменты параллельно
type Engine struct {
	Workers int
}

// NewEngine создает движок с заданным числом воркеров
func NewEngine(workers int) *Engine {
	return &Engine{Workers: workers}
}

// ParseAll разбирает документ пулом воркеров. Результаты собираются в порядке
// документа, поэтому итог совпадает с последовательным ParseAll.
func (e *Engine) ParseAll(ctx context.Context, text string) (*Records, error) {
	spans := SplitSpans(text, LocateHeaders(text))
	ids := spans.IDs()
	parsed := make([]Record, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i, id := range ids {
		i, id := i, id
		span, _ := spans.Get(id)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parsed[i] = ParseSection(id, span)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := NewIDMap[Record]()
	for _, rec := range parsed {
		out.Set(rec.ID, rec)
	}
	return out, nil
}

// DuplicateIDs возвращает номера, встретившиеся больше одного раза, по возрастанию
func DuplicateIDs(headers []Header) []int {
	seen := make(map[int]int, len(headers))
	for _, h := range headers {
		seen[h.ID]++
	}
	var dups []int
	for id, count := range seen {
		if count > 1 {
			dups = append(dups, id)
		}
	}
	sort.Ints(dups)
	return dups
}

// Stats - сводка по результату разбора
type Stats struct {
	Total      int `json:"total"`
	WithChoice int `json:"with_choice"`
	NoChoice   int `json:"no_choice"`
	SoftMisses int `json:"soft_misses"`
	MinID      int `json:"min_id"`
	MaxID      int `json:"max_id"`
}

// Summarize считает записи с буквой ответа, без буквы и без блока ответа
func Summarize(records *Records) Stats {
	var s Stats
	for i, rec := range records.Values() {
		s.Total++
		switch {
		case rec.AnswerChoice != nil:
			s.WithChoice++
		case rec.AnswerBlock == "":
			s.SoftMisses++
		default:
			s.NoChoice++
		}
		if i == 0 || rec.ID < s.MinID {
			s.MinID = rec.ID
		}
		if rec.ID > s.MaxID {
			s.MaxID = rec.ID
		}
	}
	return s
}
