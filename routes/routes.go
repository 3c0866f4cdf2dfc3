package routes

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/Ujwol1086/school-attendance-system/handlers"
	"github.com/Ujwol1086/school-attendance-system/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo) {
	auth := handlers.NewAuthHandler()
	dash := handlers.NewDashboardHandler()
	att := handlers.NewAttendanceHandler()
	std := handlers.NewStudentHandler()
	tch := handlers.NewTeacherHandler()
	crs := handlers.NewCourseHandler()

	e.GET("/healthz", handlers.Health)

	// ===== Public auth =====
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	authMW := middlewares.RequireAuth(secret)

	// ===== Dashboards (role resolved per request) =====
	app := e.Group("", authMW)
	app.GET("/dashboard", dash.Home)
	app.GET("/teacher/dashboard", dash.TeacherDashboard)
	app.GET("/student/dashboard", dash.StudentDashboard)

	// ===== Attendance =====
	app.GET("/attendance", att.List)
	app.GET("/attendance/bulk", att.BulkForm)
	app.POST("/attendance/bulk", att.BulkMark)
	app.POST("/attendance/mark", att.Mark)

	// Course catalogue is readable by any signed-in user
	app.GET("/courses", crs.List)
	app.GET("/courses/:id", crs.Get)

	// ===== Admin management =====
	admin := e.Group("/admin", authMW, middlewares.RequireAdmin())

	admin.GET("/students", std.List)
	admin.POST("/students", std.Create)
	admin.PUT("/students/:id", std.Update)
	admin.DELETE("/students/:id", std.Delete)

	admin.GET("/teachers", tch.List)
	admin.POST("/teachers", tch.Create)
	admin.PUT("/teachers/:id", tch.Update)
	admin.DELETE("/teachers/:id", tch.Delete)

	admin.POST("/courses", crs.Create)
	admin.PUT("/courses/:id", crs.Update)
	admin.DELETE("/courses/:id", crs.Delete)
	admin.POST("/courses/:id/students/:studentID", crs.Enroll)
	admin.DELETE("/courses/:id/students/:studentID", crs.Unenroll)
}
