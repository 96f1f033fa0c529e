package app

import (
	"remedial_edu_backend/docs"
	"remedial_edu_backend/internal/config"
	"remedial_edu_backend/internal/middleware"
	"remedial_edu_backend/internal/model"
	"remedial_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, repos, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerTeacherRoutes(authGroup, c)
		a.registerPrincipalRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Student-facing attempt lifecycle. Students authenticate by quiz code and
	// LRN, not by account, so no JWT is required; a teacher previewing with a
	// valid token still gets claims attached and last-seen recorded.
	attempts := router.Group("/api/assessments")
	attempts.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		attempts.POST("/access", c.attempt.Access)
		attempts.POST("/attempts/start", c.attempt.Access)
		attempts.POST("/attempts/:attemptId/answers", c.attempt.RecordAnswer)
		attempts.POST("/attempts/:attemptId/submit", c.attempt.Submit)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.Profile)

	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.MasterTeacher, model.Principal))
	{
		// Assessment authoring
		teacher.POST("/assessments", c.assessment.Create)
		teacher.GET("/assessments", c.assessment.List)
		teacher.GET("/assessments/:id", c.assessment.Get)
		teacher.PUT("/assessments/:id", c.assessment.Update)
		teacher.PATCH("/assessments/:id/publish", c.assessment.SetPublished)
		teacher.DELETE("/assessments/:id", c.assessment.Delete)
		teacher.GET("/assessments/:id/attempts", c.assessment.ListAttempts)

		// Attempt review and manual grading
		teacher.GET("/attempts/:attemptId", c.attempt.Detail)
		teacher.POST("/attempts/:attemptId/grade", c.attempt.GradeAnswer)
		teacher.POST("/attempts/:attemptId/finalize-grading", c.attempt.FinalizeGrading)

		// Student roster
		teacher.POST("/students", c.student.Create)
		teacher.GET("/students", c.student.List)
		teacher.GET("/students/:id", c.student.Get)
		teacher.PUT("/students/:id", c.student.Update)
		teacher.DELETE("/students/:id", c.student.Delete)
		teacher.PUT("/students/:id/phonemic-level", c.student.SetPhonemicLevel)
		teacher.GET("/students/:id/phonemic-levels", c.student.PhonemicLevels)

		// Attendance
		teacher.POST("/attendance", c.attendance.Record)
		teacher.GET("/attendance", c.attendance.History)

		// Learning materials
		teacher.POST("/materials", c.material.Upload)
		teacher.GET("/materials", c.material.List)
		teacher.GET("/materials/:id", c.material.Get)
		teacher.DELETE("/materials/:id", c.material.Delete)

		// Approval requests (teachers file and track their own)
		teacher.POST("/approvals", c.approval.Submit)
		teacher.GET("/approvals", c.approval.List)
		teacher.GET("/approvals/:id", c.approval.Get)
	}
}

func (a *App) registerPrincipalRoutes(rg *gin.RouterGroup, c *controllers) {
	principal := rg.Group("/principal")
	principal.Use(middleware.RoleMiddleware(model.Principal))
	{
		principal.GET("/approvals", c.approval.List)
		principal.GET("/approvals/:id", c.approval.Get)
		principal.POST("/approvals/:id/decision", c.approval.Decide)
	}
}
