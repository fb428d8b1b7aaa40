package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/gradebook/internal/app/repositories/memory"
	"github.com/yigit/gradebook/internal/app/services"
)

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServices(memory.NewRepositories())

	if err := CreateDefaultData(ctx, svc.Courses, []string{"Algebra", " ", "Biology"}, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	courses, err := svc.Courses.ListCourses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courses) != 2 || courses[0].Name != "Algebra" || courses[1].Name != "Biology" {
		t.Fatalf("unexpected courses after seed: %+v", courses)
	}

	// A second run finds courses and adds nothing.
	if err := CreateDefaultData(ctx, svc.Courses, []string{"Chemistry"}, zerolog.Nop()); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	courses, _ = svc.Courses.ListCourses(ctx)
	if len(courses) != 2 {
		t.Fatalf("expected seed to be skipped, got %d courses", len(courses))
	}
}
