package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"exam-qa-study/internal/config"
	"exam-qa-study/internal/extractor"
	"exam-qa-study/internal/metrics"
	"exam-qa-study/internal/progress"
	"exam-qa-study/internal/segment"
	"exam-qa-study/internal/server"
	"exam-qa-study/internal/storage"
	"exam-qa-study/internal/study"
)

const defaultConfigPath = "config/study.yaml"

func usage() {
	fmt.Fprintln(os.Stderr, "Использование: exam-qa-study <команда> [флаги]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Команды:")
	fmt.Fprintln(os.Stderr, "  parse    разобрать документ и сохранить JSON")
	fmt.Fprintln(os.Stderr, "  js       обернуть JSON в скрипт для просмотрщика")
	fmt.Fprintln(os.Stderr, "  xlsx     выгрузить JSON в таблицу")
	fmt.Fprintln(os.Stderr, "  show     показать вопрос или ответ по номеру")
	fmt.Fprintln(os.Stderr, "  study    интерактивная тренировка")
	fmt.Fprintln(os.Stderr, "  history  журнал решенных вопросов")
	fmt.Fprintln(os.Stderr, "  serve    HTTP API")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ Ошибка загрузки .env файла: %v", err)
	}

	configPath := os.Getenv("EXAM_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("Ошибка конфигурации окружения: %v", err)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "parse":
		err = runParse(ctx, cfg, args)
	case "js":
		err = runJS(cfg, args)
	case "xlsx":
		err = runXLSX(cfg, args)
	case "show":
		err = runShow(ctx, cfg, args)
	case "study":
		err = runStudy(ctx, cfg, args)
	case "history":
		err = runHistory(ctx, cfg)
	case "serve":
		err = runServe(ctx, cfg, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("❌ %s: %v", cmd, err)
	}
}

func runParse(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	in := fs.String("in", cfg.Source.Path, "исходный документ (PDF или текст)")
	out := fs.String("out", cfg.Export.JSONPath, "файл JSON экспорта")
	workers := fs.Int("workers", cfg.Parse.Workers, "число параллельных воркеров")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := loadText(ctx, *in)
	if err != nil {
		return err
	}

	if dups := segment.DuplicateIDs(segment.LocateHeaders(text)); len(dups) > 0 {
		log.Printf("⚠️ Повторяющиеся заголовки (берется последний): %v", dups)
	}

	records, err := segment.NewEngine(*workers).ParseAll(ctx, text)
	if err != nil {
		return fmt.Errorf("ошибка разбора: %w", err)
	}

	if err := storage.SaveRecords(*out, records); err != nil {
		return err
	}

	stats := segment.Summarize(records)
	fmt.Printf("✅ Сохранено %d вопросов в %s\n", stats.Total, *out)
	if sum, err := storage.Fingerprint([]byte(text)); err == nil {
		fmt.Printf("• Отпечаток документа: %s\n", sum)
	}
	fmt.Println("\n📋 Сводка:")
	fmt.Printf("• С буквой ответа: %d\n", stats.WithChoice)
	fmt.Printf("• Без буквы ответа: %d\n", stats.NoChoice)
	fmt.Printf("• Без блока ответа: %d\n", stats.SoftMisses)
	if stats.Total > 0 {
		fmt.Printf("• Диапазон номеров: Q%d..Q%d\n", stats.MinID, stats.MaxID)
	}
	return nil
}

func runJS(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("js", flag.ExitOnError)
	in := fs.String("json", cfg.Export.JSONPath, "файл JSON экспорта")
	out := fs.String("out", cfg.Export.JSPath, "файл скрипта")
	global := fs.String("global", cfg.Export.JSGlobal, "глобальная переменная")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := storage.SaveJS(*in, *out, *global); err != nil {
		return err
	}
	fmt.Printf("✅ Скрипт %s записан\n", *out)
	return nil
}

func runXLSX(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("xlsx", flag.ExitOnError)
	in := fs.String("json", cfg.Export.JSONPath, "файл JSON экспорта")
	out := fs.String("out", cfg.Export.XLSXPath, "файл таблицы")
	if err := fs.Parse(args); err != nil {
		return err
	}

	export, err := storage.LoadRecords(*in)
	if err != nil {
		return err
	}
	if err := storage.SaveXLSX(*out, export.Records); err != nil {
		return err
	}
	fmt.Printf("✅ Таблица %s записана (%d вопросов)\n", *out, export.Records.Len())
	return nil
}

func runShow(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	in := fs.String("in", cfg.Source.Path, "исходный документ")
	id := fs.Int("q", 0, "номер вопроса")
	answer := fs.Bool("answer", false, "показать ответ и объяснение")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("нужен номер вопроса: -q N")
	}

	text, err := loadText(ctx, *in)
	if err != nil {
		return err
	}

	var out string
	if *answer {
		out, err = segment.AnswerExplain(text, *id)
	} else {
		out, err = segment.QuestionOnly(text, *id)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runStudy(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("study", flag.ExitOnError)
	in := fs.String("in", cfg.Source.Path, "исходный документ")
	start := fs.Int("start", cfg.Study.StartQuestion, "номер первого вопроса")
	noColor := fs.Bool("no-color", cfg.Study.NoColor || !term.IsTerminal(int(os.Stdout.Fd())), "отключить цвета")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := loadText(ctx, *in)
	if err != nil {
		return err
	}
	records, err := segment.NewEngine(cfg.Parse.Workers).ParseAll(ctx, text)
	if err != nil {
		return fmt.Errorf("ошибка разбора: %w", err)
	}

	store, err := progress.Open(ctx, cfg.Progress)
	if err != nil {
		return err
	}
	defer store.Close()

	session := study.New(study.Options{
		Text:          text,
		Records:       records,
		Store:         store,
		Metrics:       metrics.NewMetrics(),
		In:            os.Stdin,
		Out:           os.Stdout,
		StartQuestion: *start,
		NoColor:       *noColor,
	})
	return session.Run(ctx)
}

func runHistory(ctx context.Context, cfg *config.Config) error {
	store, err := progress.Open(ctx, cfg.Progress)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("📝 Записей нет")
		return nil
	}
	fmt.Println("📊 Решенные вопросы")
	for _, e := range entries {
		fmt.Printf("%s,%s\n", e.Token, e.Letter)
	}
	fmt.Printf("Всего %d\n", len(entries))
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	in := fs.String("in", cfg.Source.Path, "исходный документ")
	addr := fs.String("addr", cfg.Server.Addr, "адрес HTTP сервера")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Server.Addr = *addr

	if cfg.Server.Gops {
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			log.Printf("⚠️ gops: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := loadText(ctx, *in)
	if err != nil {
		return err
	}
	records, err := segment.NewEngine(cfg.Parse.Workers).ParseAll(ctx, text)
	if err != nil {
		return fmt.Errorf("ошибка разбора: %w", err)
	}
	fmt.Printf("✅ Разобрано %d вопросов\n", records.Len())

	store, err := progress.Open(ctx, cfg.Progress)
	if err != nil {
		return err
	}
	defer store.Close()

	return server.New(cfg.Server, text, records, store, metrics.NewMetrics()).ListenAndServe(ctx)
}

func loadText(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("не указан исходный документ (-in или EXAM_SOURCE)")
	}
	if path == "-" {
		return extractor.ReadAll(os.Stdin)
	}
	fmt.Printf("📄 Чтение %s...\n", path)
	return extractor.New().Extract(ctx, path)
}
