package edit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hy4ri/bubbly-todo/internal/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	categories []api.Category
	loadErr    error

	updateMsg string
	updateErr error
	calls     int
	lastID    int64
	lastReq   api.EditTodoRequest
}

func (f *fakeService) GetCategories(ctx context.Context) ([]api.Category, error) {
	return f.categories, f.loadErr
}

func (f *fakeService) UpdateTodo(ctx context.Context, id int64, req api.EditTodoRequest) (string, error) {
	f.calls++
	f.lastID = id
	f.lastReq = req
	return f.updateMsg, f.updateErr
}

func TestLoadCategories(t *testing.T) {
	svc := &fakeService{categories: []api.Category{{Category: "Errands"}, {Category: "Work"}}}
	flow := NewFlow(svc, zerolog.Nop())

	set, err := flow.LoadCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Errands", "Work"}, set.Names())
}

func TestLoadCategoriesFailureIsEmpty(t *testing.T) {
	errs := []error{
		&api.NetworkError{Op: "GET /category", Err: errors.New("connection refused")},
		&api.DecodeError{Path: "/category", Err: errors.New("unexpected EOF")},
	}

	for _, e := range errs {
		flow := NewFlow(&fakeService{loadErr: e}, zerolog.Nop())
		set, err := flow.LoadCategories(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 0, set.Len())
	}
}

func TestSubmitResults(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		err    error
		wantOK bool
		want   string
	}{
		{
			name:   "success uses raw body",
			msg:    "Updated successfully",
			wantOK: true,
			want:   "Updated successfully",
		},
		{
			name: "rejection uses raw body",
			err:  &api.APIError{StatusCode: 404, Message: "no such todo"},
			want: "no such todo",
		},
		{
			name: "rejection with empty body uses fallback",
			err:  &api.APIError{StatusCode: 500},
			want: FallbackRejectMessage,
		},
		{
			name: "wrapped rejection",
			err:  fmt.Errorf("failed to update todo 42: %w", &api.APIError{StatusCode: 400, Message: "bad date"}),
			want: "bad date",
		},
		{
			name: "transport error embeds description",
			err:  &api.NetworkError{Op: "POST /bubbly-todo/update/42", Err: errors.New("connection refused")},
			want: "update failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{updateMsg: tt.msg, updateErr: tt.err}
			flow := NewFlow(svc, zerolog.Nop())

			res := flow.Submit(context.Background(), 42, api.EditTodoRequest{Todo: "x"})
			assert.Equal(t, tt.wantOK, res.OK)
			assert.Equal(t, tt.want, res.Message)
			assert.Equal(t, 1, svc.calls, "exactly one network call per submission")
			assert.Equal(t, int64(42), svc.lastID)
		})
	}
}

// The example scenario end to end over HTTP: only the date changes.
func TestExampleScenario(t *testing.T) {
	var sent map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/category":
			w.Write([]byte(`[{"category":"Errands","categoryColor":"#ff0000","categoryId":1},{"category":"Work","categoryColor":null,"categoryId":2}]`))
		case "/bubbly-todo/update/42":
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &sent)
			w.Write([]byte("Updated successfully"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	flow := NewFlow(api.NewClient(server.URL), zerolog.Nop())
	ctx := context.Background()

	s := New(42, sampleRecord()).StartLoading()
	set, err := flow.LoadCategories(ctx)
	require.NoError(t, err)
	s = s.CategoriesLoaded(set)
	assert.Equal(t, []string{"Errands", "Work"}, s.Categories().Names())

	s, err = s.BeginSubmit()
	require.NoError(t, err)

	req := s.BuildRequest("Buy milk", date(t, "2024-09-15"))
	res := flow.Submit(ctx, s.ID(), req)
	require.True(t, res.OK)
	assert.Equal(t, "Updated successfully", res.Message)

	assert.Equal(t, map[string]interface{}{
		"todo":              "Buy milk",
		"todoDate":          "2024-09-15",
		"todoCategory":      "Errands",
		"todoCategoryColor": "#ff0000",
	}, sent)

	s = s.Succeeded(res.Message)
	assert.Equal(t, PhaseSuccess, s.Phase())
}

func TestSubmitTransportErrorOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	res := NewFlow(api.NewClient(url), zerolog.Nop()).Submit(context.Background(), 1, api.EditTodoRequest{})
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "update failed: ")
	assert.Contains(t, res.Message, "connect")
}
