package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/app/controllers"
	"github.com/yigit/gradebook/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	statusController *controllers.StatusController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	gradeController *controllers.GradeController,
) {
	router.GET("/", statusController.Root)
	router.GET("/health", statusController.Health)

	students := router.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.POST("", studentController.CreateStudent)
	}

	courses := router.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.POST("", courseController.CreateCourse)
	}

	grades := router.Group("/grades")
	{
		grades.GET("", gradeController.GetAllGrades)
		grades.POST("", gradeController.CreateGrade)
	}

	// Unmatched paths and unsupported methods on known paths both answer 404.
	router.HandleMethodNotAllowed = false
	router.NoRoute(middleware.NotFound)
}
