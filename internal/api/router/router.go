package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tjmanoj/gce-placify/config"
	"github.com/tjmanoj/gce-placify/internal/api/handler"
	"github.com/tjmanoj/gce-placify/internal/api/middleware"
	"github.com/tjmanoj/gce-placify/internal/model"
	"github.com/tjmanoj/gce-placify/pkg/jwt"
	"github.com/tjmanoj/gce-placify/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20)) // 花名册 Excel 上传，上限 8MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	student := model.RoleStudent.String()
	admin := model.RoleAdmin.String()
	developer := model.RoleDeveloper.String()

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录与注册接口限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Signup)
			auth.POST("/verify-otp", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.VerifyOTP)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 角色管理与花名册导入
			adminGroup := authorized.Group("/admin")
			{
				adminGroup.POST("/promote", middleware.RoleAuth(developer), h.Admin.Promote)
				adminGroup.POST("/demote", middleware.RoleAuth(developer), h.Admin.Demote)
				adminGroup.POST("/upload-students", middleware.RoleAuth(admin, developer), h.Admin.UploadStudents)
			}

			// 职位与申请模块
			jobs := authorized.Group("/jobs")
			{
				jobs.POST("/add", middleware.RoleAuth(admin, developer), h.Job.Create)
				jobs.GET("", middleware.RoleAuth(student, admin, developer), h.Job.List)
				jobs.GET("/download-applied/:job_id", middleware.RoleAuth(admin, developer), h.Job.DownloadApplicants)
				jobs.GET("/:job_id", h.Job.Get)
				jobs.PUT("/:job_id", middleware.RoleAuth(admin, developer), h.Job.Update)
				jobs.DELETE("/:job_id", middleware.RoleAuth(admin, developer), h.Job.Delete)

				jobs.POST("/:job_id/apply", middleware.RoleAuth(student), h.Application.Apply)
				jobs.PUT("/:job_id/approve/:student_id", middleware.RoleAuth(admin, developer), h.Application.Approve)
				jobs.PUT("/:job_id/approve-all", middleware.RoleAuth(admin, developer), h.Application.ApproveAll)
				jobs.DELETE("/:job_id/reject/:student_id", middleware.RoleAuth(admin, developer), h.Application.Reject)
				jobs.DELETE("/:job_id/revoke-application", middleware.RoleAuth(student), h.Application.Revoke)
				jobs.GET("/:job_id/pending-approvals", middleware.RoleAuth(admin, developer), h.Application.ListPending)
				jobs.GET("/:job_id/approved-students", middleware.RoleAuth(admin, developer), h.Application.ListApproved)
				jobs.GET("/:job_id/application-status", middleware.RoleAuth(student), h.Application.Status)
				jobs.GET("/:job_id/check-eligibility", middleware.RoleAuth(student), h.Application.Eligibility)
			}

			// 学生档案模块
			students := authorized.Group("/students")
			students.Use(middleware.RoleAuth(student))
			{
				students.GET("/profile", h.Student.Profile)
				students.PUT("/update-profile", h.Student.UpdateProfile)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.POST("/subscribe", middleware.RoleAuth(student), h.Notification.Subscribe)
			}
		}
	}

	return r
}
