package projection

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/yigit/gradebook/internal/app/models"
)

func strPtr(s string) *string { return &s }

func TestReference(t *testing.T) {
	courses := Names{"C1": "Algebra"}

	tests := []struct {
		name     string
		stored   *string
		wantID   *string
		wantName *string
	}{
		{name: "unset", stored: nil},
		{name: "empty counts as unset", stored: strPtr("")},
		{name: "resolves", stored: strPtr("C1"), wantID: strPtr("C1"), wantName: strPtr("Algebra")},
		{name: "dangling keeps id", stored: strPtr("C9"), wantID: strPtr("C9")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name := Reference(tt.stored, courses)
			if !equal(id, tt.wantID) {
				t.Errorf("id = %v, want %v", deref(id), deref(tt.wantID))
			}
			if !equal(name, tt.wantName) {
				t.Errorf("name = %v, want %v", deref(name), deref(tt.wantName))
			}
		})
	}
}

func TestReferenceNilResolver(t *testing.T) {
	id, name := Reference(strPtr("C1"), nil)
	if id == nil || *id != "C1" || name != nil {
		t.Fatalf("got (%v, %v)", deref(id), deref(name))
	}
}

func TestStudentView(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &models.Student{ID: "S1", Name: "Ann", CourseID: strPtr("C1"), CreatedAt: created}

	view := Student(s, Names{"C1": "Algebra"})

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"S1","name":"Ann","email":null,"course_id":"C1","course_name":"Algebra","created_at":"2025-01-02T03:04:05.000Z"}`
	if string(body) != want {
		t.Fatalf("got  %s\nwant %s", body, want)
	}
}

func TestStudentViewWithoutCourse(t *testing.T) {
	s := &models.Student{ID: "S2", Name: "Bob", Email: strPtr("bob@example.com")}
	view := Student(s, Names{"C1": "Algebra"})
	if view.CourseID != nil || view.CourseName != nil {
		t.Fatalf("expected null course fields, got %v/%v", deref(view.CourseID), deref(view.CourseName))
	}
	if view.Email == nil || *view.Email != "bob@example.com" {
		t.Fatalf("email not carried through")
	}
}

func TestGradeReferencesResolveIndependently(t *testing.T) {
	students := Names{"S1": "Ann"}
	courses := Names{"C1": "Algebra"}

	tests := []struct {
		name            string
		grade           models.Grade
		wantStudentName *string
		wantCourseName  *string
	}{
		{
			name:            "both resolve",
			grade:           models.Grade{ID: "G1", StudentID: "S1", CourseID: "C1", Score: 95},
			wantStudentName: strPtr("Ann"),
			wantCourseName:  strPtr("Algebra"),
		},
		{
			name:           "dangling student",
			grade:          models.Grade{ID: "G2", StudentID: "S9", CourseID: "C1", Score: 70},
			wantCourseName: strPtr("Algebra"),
		},
		{
			name:            "dangling course",
			grade:           models.Grade{ID: "G3", StudentID: "S1", CourseID: "C9", Score: 70},
			wantStudentName: strPtr("Ann"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Grade(&tt.grade, students, courses)
			if view.StudentID == nil || *view.StudentID != tt.grade.StudentID {
				t.Errorf("student_id = %v, want %q", deref(view.StudentID), tt.grade.StudentID)
			}
			if view.CourseID == nil || *view.CourseID != tt.grade.CourseID {
				t.Errorf("course_id = %v, want %q", deref(view.CourseID), tt.grade.CourseID)
			}
			if !equal(view.StudentName, tt.wantStudentName) {
				t.Errorf("student_name = %v, want %v", deref(view.StudentName), deref(tt.wantStudentName))
			}
			if !equal(view.CourseName, tt.wantCourseName) {
				t.Errorf("course_name = %v, want %v", deref(view.CourseName), deref(tt.wantCourseName))
			}
		})
	}
}

func TestGradeZeroScoreIsSerialized(t *testing.T) {
	view := Grade(&models.Grade{ID: "G1", StudentID: "S1", CourseID: "C1", Score: 0}, Names{}, Names{})
	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	score, ok := decoded["score"]
	if !ok || score != float64(0) {
		t.Fatalf("score = %v (present=%v), want 0", score, ok)
	}
}

func TestNamesIndexes(t *testing.T) {
	cn := CourseNames([]*models.Course{{ID: "C1", Name: "Algebra"}})
	if name, ok := cn.Resolve("C1"); !ok || name != "Algebra" {
		t.Fatalf("course lookup failed")
	}
	sn := StudentNames([]*models.Student{{ID: "S1", Name: "Ann"}})
	if _, ok := sn.Resolve("S2"); ok {
		t.Fatalf("unexpected hit for unknown student")
	}
}

func equal(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
