// Package mongodb stores the three collections as MongoDB documents.
//
// Record ids are ObjectIDs rendered as hex. Reference fields are written as
// ObjectIDs when the given id parses as one and as plain strings otherwise,
// so a malformed reference is kept and simply never resolves.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// Collection names shared with existing deployments
const (
	CoursesCollection  = "courses"
	StudentsCollection = "students"
	GradesCollection   = "grades"
)

// Store is a connected database handle
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore wraps client, using database name
func NewStore(client *mongo.Client, name string) *Store {
	return &Store{client: client, db: client.Database(name)}
}

// Ping checks the primary is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// NewRepositories initializes all repositories over one client
func NewRepositories(client *mongo.Client, database string) *repositories.Repositories {
	s := NewStore(client, database)
	return &repositories.Repositories{
		CourseRepository:  &CourseRepository{coll: s.db.Collection(CoursesCollection)},
		StudentRepository: &StudentRepository{coll: s.db.Collection(StudentsCollection)},
		GradeRepository:   &GradeRepository{coll: s.db.Collection(GradesCollection)},
		Store:             s,
		Close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
			}
		},
	}
}

type courseDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type studentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     *string            `bson:"email,omitempty"`
	CourseID  bson.RawValue      `bson:"course_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

type gradeDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID bson.RawValue      `bson:"student_id,omitempty"`
	CourseID  bson.RawValue      `bson:"course_id,omitempty"`
	Score     float64            `bson:"score"`
	CreatedAt time.Time          `bson:"created_at"`
}

// referenceValue is the stored form of a reference id
func referenceValue(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// referenceString reads a stored reference back. Absent or null yields nil.
func referenceString(v bson.RawValue) *string {
	var s string
	switch v.Type {
	case bson.TypeObjectID:
		s = v.ObjectID().Hex()
	case bson.TypeString:
		s = v.StringValue()
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range repositories.UniqueIDs(ids) {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func insertedID(res *mongo.InsertOneResult) (string, error) {
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// findOne decodes the document with the given hex id into out
func findOne(ctx context.Context, coll *mongo.Collection, id string, out interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrNotFound
	}
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	return err
}

// CourseRepository is the courses collection
type CourseRepository struct {
	coll *mongo.Collection
}

// Create inserts a course and returns its generated id
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (string, error) {
	res, err := r.coll.InsertOne(ctx, courseDocument{Name: course.Name})
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting course document")
		return "", fmt.Errorf("error creating course: %w", err)
	}
	return insertedID(res)
}

// FindAll returns every course in natural order
func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	return r.find(ctx, bson.M{})
}

// FindByID returns repositories.ErrNotFound when no course has id
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var doc courseDocument
	if err := findOne(ctx, r.coll, id, &doc); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return doc.model(), nil
}

// FindByIDs returns the courses that exist among ids
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*models.Course{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *CourseRepository) find(ctx context.Context, filter bson.M) ([]*models.Course, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	var docs []courseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding courses: %w", err)
	}
	courses := make([]*models.Course, 0, len(docs))
	for i := range docs {
		courses = append(courses, docs[i].model())
	}
	return courses, nil
}

func (d *courseDocument) model() *models.Course {
	return &models.Course{ID: d.ID.Hex(), Name: d.Name}
}

// StudentRepository is the students collection
type StudentRepository struct {
	coll *mongo.Collection
}

// Create inserts a student and returns its generated id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (string, error) {
	doc := bson.D{
		{Key: "name", Value: student.Name},
	}
	if student.Email != nil {
		doc = append(doc, bson.E{Key: "email", Value: *student.Email})
	}
	if student.CourseID != nil {
		doc = append(doc, bson.E{Key: "course_id", Value: referenceValue(*student.CourseID)})
	}
	doc = append(doc, bson.E{Key: "created_at", Value: student.CreatedAt})

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting student document")
		return "", fmt.Errorf("error creating student: %w", err)
	}
	return insertedID(res)
}

// FindAll returns every student in natural order
func (r *StudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	return r.find(ctx, bson.M{})
}

// FindByID returns repositories.ErrNotFound when no student has id
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var doc studentDocument
	if err := findOne(ctx, r.coll, id, &doc); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return doc.model(), nil
}

// FindByIDs returns the students that exist among ids
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*models.Student{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *StudentRepository) find(ctx context.Context, filter bson.M) ([]*models.Student, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	var docs []studentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding students: %w", err)
	}
	students := make([]*models.Student, 0, len(docs))
	for i := range docs {
		students = append(students, docs[i].model())
	}
	return students, nil
}

func (d *studentDocument) model() *models.Student {
	return &models.Student{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		CourseID:  referenceString(d.CourseID),
		CreatedAt: d.CreatedAt,
	}
}

// GradeRepository is the grades collection
type GradeRepository struct {
	coll *mongo.Collection
}

// Create inserts a grade and returns its generated id
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) (string, error) {
	doc := bson.D{
		{Key: "student_id", Value: referenceValue(grade.StudentID)},
		{Key: "course_id", Value: referenceValue(grade.CourseID)},
		{Key: "score", Value: grade.Score},
		{Key: "created_at", Value: grade.CreatedAt},
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting grade document")
		return "", fmt.Errorf("error creating grade: %w", err)
	}
	return insertedID(res)
}

// FindAll returns every grade in natural order
func (r *GradeRepository) FindAll(ctx context.Context) ([]*models.Grade, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	var docs []gradeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding grades: %w", err)
	}
	grades := make([]*models.Grade, 0, len(docs))
	for i := range docs {
		grades = append(grades, docs[i].model())
	}
	return grades, nil
}

// FindByID returns repositories.ErrNotFound when no grade has id
func (r *GradeRepository) FindByID(ctx context.Context, id string) (*models.Grade, error) {
	var doc gradeDocument
	if err := findOne(ctx, r.coll, id, &doc); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting grade by ID: %w", err)
	}
	return doc.model(), nil
}

func (d *gradeDocument) model() *models.Grade {
	g := &models.Grade{
		ID:        d.ID.Hex(),
		Score:     d.Score,
		CreatedAt: d.CreatedAt,
	}
	if s := referenceString(d.StudentID); s != nil {
		g.StudentID = *s
	}
	if c := referenceString(d.CourseID); c != nil {
		g.CourseID = *c
	}
	return g
}
