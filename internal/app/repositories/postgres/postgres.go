package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// NewRepositories initializes all repositories over one pool
func NewRepositories(db *pgxpool.Pool) *repositories.Repositories {
	return &repositories.Repositories{
		CourseRepository:  NewCourseRepository(db),
		StudentRepository: NewStudentRepository(db),
		GradeRepository:   NewGradeRepository(db),
		Store:             db,
		Close:             db.Close,
	}
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, sb: newBuilder()}
}

// Create inserts a course and returns its generated id
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (string, error) {
	id := uuid.NewString()
	sql, args, err := r.sb.Insert("courses").
		Columns("id", "name").
		Values(id, course.Name).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return "", fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// FindAll retrieves all courses
func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("courses").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}
	return r.query(ctx, sql, args)
}

// FindByID retrieves a course by id
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// FindByIDs retrieves the courses that exist among ids
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	ids = repositories.UniqueIDs(ids)
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}
	sql, args, err := r.sb.Select("id", "name").
		From("courses").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get courses by IDs query: %w", err)
	}
	return r.query(ctx, sql, args)
}

func (r *CourseRepository) query(ctx context.Context, sql string, args []interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

var studentColumns = []string{"id", "name", "email", "course_id", "created_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db, sb: newBuilder()}
}

// Create inserts a student and returns its generated id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (string, error) {
	id := uuid.NewString()
	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(id, student.Name, student.Email, student.CourseID, student.CreatedAt).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return "", fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}

// FindAll retrieves all students
func (r *StudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}
	return r.query(ctx, sql, args)
}

// FindByID retrieves a student by id
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.Name, &student.Email, &student.CourseID, &student.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Str("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// FindByIDs retrieves the students that exist among ids
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	ids = repositories.UniqueIDs(ids)
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get students by IDs query: %w", err)
	}
	return r.query(ctx, sql, args)
}

func (r *StudentRepository) query(ctx context.Context, sql string, args []interface{}) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(&student.ID, &student.Name, &student.Email, &student.CourseID, &student.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

var gradeColumns = []string{"id", "student_id", "course_id", "score", "created_at"}

// GradeRepository handles grade database operations
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db, sb: newBuilder()}
}

// Create inserts a grade and returns its generated id
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) (string, error) {
	id := uuid.NewString()
	sql, args, err := r.sb.Insert("grades").
		Columns(gradeColumns...).
		Values(id, grade.StudentID, grade.CourseID, grade.Score, grade.CreatedAt).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build create grade query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create grade query")
		return "", fmt.Errorf("error creating grade: %w", err)
	}
	return id, nil
}

// FindAll retrieves all grades
func (r *GradeRepository) FindAll(ctx context.Context) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("grades").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all grades query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Score, &grade.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, grade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}
	return grades, nil
}

// FindByID retrieves a grade by id
func (r *GradeRepository) FindByID(ctx context.Context, id string) (*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	grade := &models.Grade{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Score, &grade.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Str("gradeID", id).Msg("Error scanning grade row")
		return nil, fmt.Errorf("error getting grade by ID: %w", err)
	}
	return grade, nil
}
