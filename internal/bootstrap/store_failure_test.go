package bootstrap

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	appRepos "github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/config"
)

var errConnReset = errors.New("read tcp 10.0.0.1:27017: connection reset by peer")

// brokenStore fails every call with err. With err nil it instead blocks
// until the caller's context ends, like a store that never answers.
type brokenStore struct {
	err error
}

func (b brokenStore) fail(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func (b brokenStore) Ping(ctx context.Context) error { return b.fail(ctx) }

type brokenCourses struct{ brokenStore }

func (b brokenCourses) Create(ctx context.Context, _ *models.Course) (string, error) {
	return "", b.fail(ctx)
}
func (b brokenCourses) FindAll(ctx context.Context) ([]*models.Course, error) {
	return nil, b.fail(ctx)
}
func (b brokenCourses) FindByID(ctx context.Context, _ string) (*models.Course, error) {
	return nil, b.fail(ctx)
}
func (b brokenCourses) FindByIDs(ctx context.Context, _ []string) ([]*models.Course, error) {
	return nil, b.fail(ctx)
}

type brokenStudents struct{ brokenStore }

func (b brokenStudents) Create(ctx context.Context, _ *models.Student) (string, error) {
	return "", b.fail(ctx)
}
func (b brokenStudents) FindAll(ctx context.Context) ([]*models.Student, error) {
	return nil, b.fail(ctx)
}
func (b brokenStudents) FindByID(ctx context.Context, _ string) (*models.Student, error) {
	return nil, b.fail(ctx)
}
func (b brokenStudents) FindByIDs(ctx context.Context, _ []string) ([]*models.Student, error) {
	return nil, b.fail(ctx)
}

type brokenGrades struct{ brokenStore }

func (b brokenGrades) Create(ctx context.Context, _ *models.Grade) (string, error) {
	return "", b.fail(ctx)
}
func (b brokenGrades) FindAll(ctx context.Context) ([]*models.Grade, error) {
	return nil, b.fail(ctx)
}
func (b brokenGrades) FindByID(ctx context.Context, _ string) (*models.Grade, error) {
	return nil, b.fail(ctx)
}

func brokenRepositories(err error) *appRepos.Repositories {
	s := brokenStore{err: err}
	return &appRepos.Repositories{
		CourseRepository:  brokenCourses{s},
		StudentRepository: brokenStudents{s},
		GradeRepository:   brokenGrades{s},
		Store:             s,
	}
}

var storeFailureCases = []struct {
	method string
	path   string
	body   string
	want   string
}{
	{http.MethodGet, "/students", "", "Failed to fetch students"},
	{http.MethodGet, "/courses", "", "Failed to fetch courses"},
	{http.MethodGet, "/grades", "", "Failed to fetch grades"},
	{http.MethodPost, "/students", `{"name":"Ann"}`, "Failed to create student"},
	{http.MethodPost, "/courses", `{"name":"Algebra"}`, "Failed to create course"},
	{http.MethodPost, "/grades", `{"student_id":"s","course_id":"c","score":95}`, "Failed to create grade"},
}

func TestStoreFailuresAnswer500(t *testing.T) {
	r := newRouterWith(t, testConfig(), brokenRepositories(errConnReset))

	for _, tt := range storeFailureCases {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if got := errorMessage(t, w); got != tt.want {
				t.Fatalf("error = %q, want %q", got, tt.want)
			}
			if strings.Contains(w.Body.String(), "connection reset") {
				t.Fatalf("cause leaked into body: %s", w.Body.String())
			}
		})
	}

	w := do(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"status":"ok","db":false}` {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
}

func TestStalledStoreAnswersBeforeDeadline(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RequestTimeout = "100ms"
	cfg.Server.HealthTimeout = "100ms"
	r := newRouterWith(t, cfg, brokenRepositories(nil))

	for _, tt := range storeFailureCases {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			start := time.Now()
			w := do(t, r, tt.method, tt.path, tt.body)
			if elapsed := time.Since(start); elapsed > 2*time.Second {
				t.Fatalf("took %s", elapsed)
			}
			if w.Code != http.StatusInternalServerError || errorMessage(t, w) != tt.want {
				t.Fatalf("got %d %s, want 500 %q", w.Code, w.Body.String(), tt.want)
			}
		})
	}

	for _, path := range []string{"/health", "/"} {
		start := time.Now()
		w := do(t, r, http.MethodGet, path, "")
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Fatalf("%s took %s", path, elapsed)
		}
		got := decode[map[string]interface{}](t, w)
		if w.Code != http.StatusOK || got["status"] != "ok" {
			t.Fatalf("%s = %d %s", path, w.Code, w.Body.String())
		}
		if got["db"] == true || got["usingDb"] == true {
			t.Fatalf("%s should report the store down: %v", path, got)
		}
	}
}

// An unreachable mongo server must still produce response bodies within the
// server's write deadline.
func TestUnreachableMongoRespondsWithinWriteTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed local port")
	}

	cfg := testConfig()
	cfg.Store.Driver = config.DriverMongo
	cfg.Store.MongoURI = "mongodb://127.0.0.1:1/gradebook"
	cfg.Store.ConnectTimeout = "500ms"
	cfg.Store.ServerSelectionTimeout = "300ms"
	cfg.Server.RequestTimeout = "1s"
	cfg.Server.HealthTimeout = "500ms"

	repos, err := SetupStore(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unreachable mongo should not fail startup: %v", err)
	}
	t.Cleanup(repos.Close)

	srv := httptest.NewUnstartedServer(newRouterWith(t, cfg, repos))
	srv.Config.WriteTimeout = 2 * time.Second
	srv.Start()
	t.Cleanup(srv.Close)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/health", http.StatusOK, `{"status":"ok","db":false}`},
		{"/students", http.StatusInternalServerError, `{"error":"Failed to fetch students"}`},
	}
	client := &http.Client{Timeout: 5 * time.Second}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			start := time.Now()
			resp, err := client.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("request failed after %s: %v", time.Since(start), err)
			}
			defer resp.Body.Close()

			var buf strings.Builder
			if _, err := io.Copy(&buf, resp.Body); err != nil {
				t.Fatalf("read body: %v", err)
			}
			if resp.StatusCode != tt.code || strings.TrimSpace(buf.String()) != tt.body {
				t.Fatalf("got %d %s, want %d %s", resp.StatusCode, buf.String(), tt.code, tt.body)
			}
		})
	}
}
