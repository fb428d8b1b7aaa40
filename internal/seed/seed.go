package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
)

// CreateDefaultData inserts the given course names when the course
// collection is empty. A non-empty collection is left untouched, so running
// it on every start is safe.
func CreateDefaultData(ctx context.Context, courseService services.CourseService, courses []string, lgr zerolog.Logger) error {
	existing, err := courseService.ListCourses(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lgr.Info().Int("courses", len(existing)).Msg("Courses already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default courses...")
	var finalErr error
	created := 0
	for _, name := range courses {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := courseService.CreateCourse(ctx, &dto.CreateCourseRequest{Name: name}); err != nil {
			lgr.Error().Err(err).Str("course", name).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}

	lgr.Info().Int("created", created).Msg("Default data check/creation finished.")
	return finalErr
}
