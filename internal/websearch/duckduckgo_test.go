package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result">
  <a class="result__a" href="#">Курс доллара сегодня</a>
  <div class="result__snippet">ЦБ установил курс 90.5 рубля.</div>
</div>
<div class="result">
  <a class="result__a" href="#">Прогноз на неделю</a>
  <div class="result__snippet">Аналитики ожидают рост.</div>
</div>
<div class="result">
  <a class="result__a" href="#">Третий результат</a>
  <div class="result__snippet">Лишний, за пределами лимита.</div>
</div>
</body></html>`

func TestSearchFormatsResults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	out, err := New(srv.URL).Search(context.Background(), "курс доллара", 2)
	require.NoError(t, err)
	require.Equal(t, "курс доллара", gotQuery)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Курс доллара сегодня: ЦБ установил курс 90.5 рубля.", lines[0])
	require.Equal(t, "Прогноз на неделю: Аналитики ожидают рост.", lines[1])
}

func TestSearchEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer srv.Close()

	out, err := New(srv.URL).Search(context.Background(), "ничего", 3)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSearchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(context.Background(), "блок", 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 403")
}
