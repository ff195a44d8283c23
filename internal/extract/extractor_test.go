package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"timetable/internal/model"
	"timetable/internal/scraper"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

const schedulePage = `<html><body><div class="item-page">
<h3>Расписание занятий</h3>
<p>22 мая 2023</p>
<table>
<tr><th>Группа</th><th>Пара</th><th>Предмет</th><th>Преподаватель</th><th>Аудитория</th></tr>
<tr><td>ИС-21</td><td>2</td><td>Математика</td><td>Иванов И.И.</td><td>305</td></tr>
<tr><td>ИС-21</td><td>3</td><td>Лабораторная работа по физике</td><td>Петров П.П.</td><td>310</td></tr>
</table>
</div></body></html>`

func newTestExtractor() *Extractor {
	client := scraper.NewClient(5*time.Second, scraper.RetryConfig{
		MaxRetries:        0,
		InitialDelay:      10 * time.Millisecond,
		MaxDelay:          100 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}, zap.NewNop())
	return NewExtractor(client, "", zap.NewNop())
}

func TestExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(schedulePage))
	}))
	defer server.Close()

	extractor := newTestExtractor()
	candidates, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	may22 := time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC)

	first := candidates[0]
	assert.True(t, first.Date.Equal(may22), "date from heading should apply to rows")
	assert.Equal(t, "ИС-21", first.GroupName)
	assert.Equal(t, "Математика", first.SubjectName)
	assert.Equal(t, "Иванов И.И.", first.TeacherName)
	assert.Equal(t, "305", first.ClassroomNumber)
	assert.Equal(t, 2, first.Lesson)
	assert.Equal(t, model.NewTimeOfDay(10, 10), first.StartTime)
	assert.Equal(t, model.NewTimeOfDay(11, 40), first.EndTime)
	assert.Equal(t, "Лекция", first.LessonType)

	second := candidates[1]
	assert.Equal(t, "Лабораторная", second.LessonType)
	assert.Equal(t, model.NewTimeOfDay(12, 20), second.StartTime)
}

// TestExtractor_Windows1251 страница в windows-1251 без charset в заголовке
// декодируется перебором кодировок
func TestExtractor_Windows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(schedulePage))
	if err != nil {
		t.Fatalf("Failed to encode test page: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(encoded)
	}))
	defer server.Close()

	extractor := newTestExtractor()
	candidates, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	assert.Equal(t, "Математика", candidates[0].SubjectName)
}

func TestExtractor_AuthWall(t *testing.T) {
	page := `<html><body>
<form action="/login"><input type="password" name="pwd"></form>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	extractor := newTestExtractor()
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("Extract() error = %v, want ErrAuthRequired", err)
	}
}

func TestExtractor_NoTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Новости колледжа</p></body></html>"))
	}))
	defer server.Close()

	extractor := newTestExtractor()
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrNoTableFound) {
		t.Errorf("Extract() error = %v, want ErrNoTableFound", err)
	}
}

// TestExtractor_SingleDataRow таблица из заголовка и одной строки данных
// дает ровно одну запись
func TestExtractor_SingleDataRow(t *testing.T) {
	page := `<html><body>
<h3>22 мая 2023</h3>
<table>
<tr><th>Группа</th><th>Пара</th><th>Предмет</th><th>Преподаватель</th><th>Аудитория</th></tr>
<tr><td>ИС-21</td><td>2</td><td>Математика</td><td>Иванов И.И.</td><td>305</td></tr>
</table>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	extractor := newTestExtractor()
	candidates, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	only := candidates[0]
	assert.True(t, only.Date.Equal(time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "ИС-21", only.GroupName)
	assert.Equal(t, 2, only.Lesson)
	assert.Equal(t, model.NewTimeOfDay(10, 10), only.StartTime)
	assert.Equal(t, model.NewTimeOfDay(11, 40), only.EndTime)
}

// TestExtractor_NoHeadingDateDefaultsToToday без даты над таблицей
// подставляется текущая календарная дата по локальным часам
func TestExtractor_NoHeadingDateDefaultsToToday(t *testing.T) {
	page := `<html><body>
<table>
<tr><th>Группа</th><th>Пара</th><th>Предмет</th><th>Преподаватель</th><th>Аудитория</th></tr>
<tr><td>ИС-21</td><td>1</td><td>Математика</td><td>Иванов И.И.</td><td>305</td></tr>
</table>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	extractor := newTestExtractor()
	candidates, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	now := time.Now()
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.True(t, candidates[0].Date.Equal(want),
		"date = %v, want local calendar date %v", candidates[0].Date, want)
}

// TestExtractor_HeaderOnlyTable таблица без строк данных не считается
// расписанием
func TestExtractor_HeaderOnlyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><table><tr><td>1</td></tr></table></body></html>"))
	}))
	defer server.Close()

	extractor := newTestExtractor()
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrNoTableFound) {
		t.Errorf("Extract() error = %v, want ErrNoTableFound", err)
	}
}

// TestExtractor_UnusableColumns заголовок распознан частично: нет ни
// предмета, ни группы с преподавателем
func TestExtractor_UnusableColumns(t *testing.T) {
	page := `<html><body><table>
<tr><th>Дата</th><th>Время</th></tr>
<tr><td>22.05.2023</td><td>8:30</td></tr>
<tr><td>23.05.2023</td><td>10:10</td></tr>
</table></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	extractor := newTestExtractor()
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrInsufficientColumns) {
		t.Errorf("Extract() error = %v, want ErrInsufficientColumns", err)
	}
}

func TestExtractor_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := newTestExtractor()
	_, err := extractor.Extract(context.Background(), server.URL)

	var fetchErr *scraper.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Extract() error = %v, want *scraper.FetchError", err)
	}
	assert.Equal(t, server.URL, fetchErr.URL)
}
