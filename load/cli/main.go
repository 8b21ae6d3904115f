package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"

	"gift-exchange-service/internal/config"
)

const (
	defaultBaseURL      = "http://localhost:8080"
	defaultRate         = 5
	defaultDuration     = 60 * time.Second
	defaultTitle        = "load-exchange"
	defaultParticipants = 12
	defaultGroupSize    = 3
	defaultResultsFile  = "load/artifacts/results.bin"
)

var resultsFile = defaultResultsFile

func main() {
	var (
		baseURL      = flag.String("url", defaultBaseURL, "Base URL сервиса")
		rate         = flag.Int("rate", defaultRate, "Запросов в секунду")
		duration     = flag.Duration("duration", defaultDuration, "Длительность теста (например, 60s)")
		title        = flag.String("title", defaultTitle, "Название тестового обмена")
		participants = flag.Int("participants", defaultParticipants, "Количество участников")
		groupSize    = flag.Int("group-size", defaultGroupSize, "Размер группы исключений")
		setupOnly    = flag.Bool("setup-only", false, "Только подготовка окружения (создание обмена)")
		report       = flag.Bool("report", false, "Показать отчёт из сохранённых результатов")
		plot         = flag.Bool("plot", false, "Сгенерировать HTML график из сохранённых результатов")
	)
	flag.Parse()

	// Путь к артефактам берём из конфигурации сервиса, если она доступна.
	if cfg, err := config.Load(); err == nil {
		resultsFile = cfg.LoadTests.ResultsPath
	}

	if *report {
		showReport()
		return
	}

	if *plot {
		generatePlot()
		return
	}

	if *setupOnly {
		exchangeID, err := setupExchange(*baseURL, *title, *participants, *groupSize)
		if err != nil {
			log.Fatalf("Ошибка при подготовке окружения: %v", err)
		}
		fmt.Printf("exchange_id: %s\n", exchangeID)
		return
	}

	fmt.Println("=== Нагрузочное тестирование с Vegeta ===")
	fmt.Printf("URL: %s\n", *baseURL)
	fmt.Printf("Rate: %d req/s\n", *rate)
	fmt.Printf("Duration: %s\n", *duration)
	fmt.Println()

	fmt.Println("1. Подготовка тестового обмена...")
	exchangeID, err := setupExchange(*baseURL, *title, *participants, *groupSize)
	if err != nil {
		log.Fatalf("Ошибка при подготовке окружения: %v", err)
	}

	fmt.Println()
	fmt.Println("2. Запуск нагрузочного тестирования...")
	if err := runLoadTest(*baseURL, *rate, *duration, exchangeID, *participants, *groupSize); err != nil {
		log.Fatalf("Ошибка при нагрузочном тестировании: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Тестирование завершено ===")
	fmt.Println("Для детального анализа выполните:")
	fmt.Printf("  go run ./load/cli -report\n")
	fmt.Printf("  go run ./load/cli -plot\n")
}

// hitOnce отправляет ровно один запрос через vegeta и возвращает результат с телом ответа.
func hitOnce(method, url string, payload any) (vegeta.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return vegeta.Result{}, fmt.Errorf("marshal payload: %w", err)
	}

	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: method,
		URL:    url,
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   body,
	})

	attacker := vegeta.NewAttacker()
	var first *vegeta.Result
	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: 1, Per: time.Second}, time.Second, "setup") {
		if first == nil {
			first = res
		}
	}
	if first == nil {
		return vegeta.Result{}, errors.New("no response")
	}
	if first.Error != "" {
		return *first, errors.New(first.Error)
	}
	return *first, nil
}

// setupExchange создаёт обмен, группы и участников для нагрузочного теста.
func setupExchange(baseURL, title string, participants, groupSize int) (string, error) {
	res, err := hitOnce(http.MethodPost, baseURL+"/exchange/create", map[string]any{"title": title})
	if err != nil {
		return "", fmt.Errorf("create exchange: %w", err)
	}
	if res.Code != http.StatusCreated {
		return "", fmt.Errorf("не удалось создать обмен: статус %d", res.Code)
	}

	var created struct {
		Exchange struct {
			ID string `json:"exchange_id"`
		} `json:"exchange"`
	}
	if err := json.Unmarshal(res.Body, &created); err != nil {
		return "", fmt.Errorf("decode exchange: %w", err)
	}
	exchangeID := created.Exchange.ID

	groupID := ""
	for i := 0; i < participants; i++ {
		if groupSize > 1 && i%groupSize == 0 {
			res, err = hitOnce(http.MethodPost, baseURL+"/exchange/group/add", map[string]any{
				"exchange_id": exchangeID,
				"label":       fmt.Sprintf("Load group %d", i/groupSize+1),
			})
			if err != nil || res.Code != http.StatusCreated {
				return "", fmt.Errorf("не удалось создать группу: статус %d: %v", res.Code, err)
			}
			var group struct {
				Group struct {
					ID string `json:"id"`
				} `json:"group"`
			}
			if err := json.Unmarshal(res.Body, &group); err != nil {
				return "", fmt.Errorf("decode group: %w", err)
			}
			groupID = group.Group.ID
		}

		res, err = hitOnce(http.MethodPost, baseURL+"/exchange/participant/add", map[string]any{
			"exchange_id": exchangeID,
			"name":        fmt.Sprintf("Load Participant %d", i+1),
		})
		if err != nil || res.Code != http.StatusCreated {
			return "", fmt.Errorf("не удалось добавить участника: статус %d: %v", res.Code, err)
		}
		if groupSize <= 1 {
			continue
		}

		var added struct {
			Participant struct {
				ID string `json:"id"`
			} `json:"participant"`
		}
		if err := json.Unmarshal(res.Body, &added); err != nil {
			return "", fmt.Errorf("decode participant: %w", err)
		}
		res, err = hitOnce(http.MethodPost, baseURL+"/exchange/participant/update", map[string]any{
			"exchange_id":    exchangeID,
			"participant_id": added.Participant.ID,
			"group_id":       groupID,
		})
		if err != nil || res.Code != http.StatusOK {
			return "", fmt.Errorf("не удалось перенести участника в группу: статус %d: %v", res.Code, err)
		}
	}

	fmt.Printf("Обмен '%s' создан: %s (%d участников)\n", title, exchangeID, participants)
	return exchangeID, nil
}

// runLoadTest запускает нагрузочное тестирование
func runLoadTest(baseURL string, rate int, duration time.Duration, exchangeID string, participants, groupSize int) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %d", rate)
	}
	targeter := newDrawTargeter(baseURL, exchangeID, participants, groupSize)

	workers := uint64(rate)
	attacker := vegeta.NewAttacker(
		vegeta.Timeout(30*time.Second),
		vegeta.Workers(workers),
	)

	var metrics vegeta.Metrics
	ctx, cancel := context.WithTimeout(context.Background(), duration+5*time.Second)
	defer cancel()

	rateLimit := vegeta.Rate{Freq: rate, Per: time.Second}
	results := attacker.Attack(targeter, rateLimit, duration, "load-test")

	var allResults []vegeta.Result
	for res := range results {
		if ctx.Err() != nil {
			attacker.Stop()
			continue
		}
		metrics.Add(res)
		allResults = append(allResults, *res)
	}
	metrics.Close()

	if err := saveResults(allResults); err != nil {
		return fmt.Errorf("сохранить результаты: %w", err)
	}

	reporter := vegeta.NewTextReporter(&metrics)
	if err := reporter(os.Stdout); err != nil {
		return fmt.Errorf("сгенерировать отчёт: %w", err)
	}

	return nil
}

// newDrawTargeter чередует сохраняемую жеребьёвку обмена и stateless-предпросмотр.
func newDrawTargeter(baseURL, exchangeID string, participants, groupSize int) vegeta.Targeter {
	preview := previewPayload(participants, groupSize)
	var counter atomic.Uint64

	return func(t *vegeta.Target) error {
		var (
			url     string
			payload any
		)
		if counter.Add(1)%2 == 0 {
			url = baseURL + "/draw/preview"
			payload = preview
		} else {
			url = baseURL + "/exchange/draw"
			payload = map[string]any{"exchange_id": exchangeID}
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}

		*t = vegeta.Target{
			Method: http.MethodPost,
			URL:    url,
			Header: http.Header{"Content-Type": []string{"application/json"}},
			Body:   body,
		}

		return nil
	}
}

func previewPayload(participants, groupSize int) map[string]any {
	list := make([]map[string]any, 0, participants)
	for i := 0; i < participants; i++ {
		item := map[string]any{"id": fmt.Sprintf("lp%d", i+1)}
		if groupSize > 1 {
			item["group_id"] = fmt.Sprintf("lg%d", i/groupSize+1)
		}
		list = append(list, item)
	}
	return map[string]any{"participants": list}
}

// saveResults сохраняет результаты в бинарный файл
func saveResults(results []vegeta.Result) error {
	if err := os.MkdirAll(filepath.Dir(resultsFile), 0o755); err != nil {
		return fmt.Errorf("создать директорию: %w", err)
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		return fmt.Errorf("создать файл: %w", err)
	}
	defer file.Close()

	encoder := vegeta.NewEncoder(file)
	for i := range results {
		if err := encoder.Encode(&results[i]); err != nil {
			return fmt.Errorf("записать результат: %w", err)
		}
	}

	fmt.Printf("Результаты сохранены в %s\n", resultsFile)
	return nil
}

func showReport() {
	if err := renderReport(os.Stdout, resultsFile); err != nil {
		log.Fatalf("Не удалось построить отчёт: %v", err)
	}
}

func renderReport(out io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer file.Close()

	decoder := vegeta.NewDecoder(file)
	var metrics vegeta.Metrics

	for {
		var res vegeta.Result
		if err := decoder.Decode(&res); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decode result: %w", err)
		}
		metrics.Add(&res)
	}
	metrics.Close()

	reporter := vegeta.NewTextReporter(&metrics)
	if err := reporter(out); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// generatePlot печатает инструкцию: HTML график строит CLI утилита vegeta.
func generatePlot() {
	writePlotInstructions(os.Stdout)
}

func writePlotInstructions(out io.Writer) {
	fmt.Fprintln(out, "Для генерации HTML графика используйте CLI утилиту vegeta:")
	fmt.Fprintf(out, "  vegeta plot %s > load/artifacts/plot.html\n", resultsFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Установка CLI утилиты:")
	fmt.Fprintln(out, "  go install github.com/tsenart/vegeta/v12@latest")
}
