package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/GraceHarbor/aggregation"
	"github.com/GraceHarbor/controllers"
	"github.com/GraceHarbor/initializers"
	"github.com/GraceHarbor/metrics"
	"github.com/GraceHarbor/middlewares"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/services"
)

const shutdownTimeout = 15 * time.Second

func init() {
	if err := initializers.LoadEnv(); err != nil {
		initializers.InitLogger("info", "console", os.Stderr)
		log.Fatal().Err(err).Msg("load configuration")
	}
	cfg := initializers.Cfg
	initializers.InitLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	initializers.ConnectDB()
	if err := initializers.ConnectRedis(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	services.InitSessionService(initializers.Redis)
	services.InitEmailService(cfg.ResendAPIKey, cfg.ResendFromEmail)
	services.InitPushNotificationService(cfg.FirebaseServiceAccountPath)
	metrics.Init(prometheus.DefaultRegisterer)
}

func main() {
	cfg := initializers.Cfg
	gin.SetMode(cfg.GinMode)

	liveStream := services.NewLiveStreamService(
		func(ctx context.Context) (models.LiveStreamStatus, error) {
			return aggregation.New(initializers.Store()).LiveStream(ctx)
		},
		func(ctx context.Context, stream models.LiveStream) {
			services.NotifyStreamLive(ctx, cfg.LiveStreamTopic, stream)
		},
		metrics.Lifecycle(),
	)
	if err := liveStream.Start(cfg.LiveStreamPoll); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.LiveStreamPoll).Msg("start live stream service")
	}
	services.SetLiveStreamService(liveStream)

	limit := func(scope string, r rate.Limit, b int) gin.HandlerFunc {
		if !cfg.RateLimited {
			return func(c *gin.Context) { c.Next() }
		}
		return middlewares.RateLimitMiddleware(scope, r, b, middlewares.ClientKey)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger)

	router.GET("/ping", limit("ping", 2, 2), controllers.Ping)
	router.GET("/metrics", metrics.Handler())

	public := router.Group("/")
	public.Use(limit("public", 10, 20))
	{
		public.GET("/announcements/banner", controllers.GetBanner)
		public.GET("/announcements", controllers.GetAnnouncements)
		public.GET("/events", controllers.GetEvents)
		public.GET("/scriptures/current", controllers.GetCurrentScripture)
		public.GET("/devotionals/current", controllers.GetCurrentDevotional)
		public.GET("/devotionals", controllers.GetDevotionals)
		public.GET("/prayers/wall", controllers.GetPrayerWall)
		public.GET("/prayers/wall/stats", controllers.GetPrayerWallStats)
		public.GET("/schedules", controllers.GetSchedules)
		public.GET("/fundraising", controllers.GetFundraising)
		public.GET("/resources", controllers.GetResources)
		public.GET("/live-stream/status", controllers.GetLiveStreamStatus)
	}

	forms := router.Group("/")
	forms.Use(limit("forms", rate.Every(20*time.Second), 3))
	{
		forms.POST("/prayers", controllers.CreatePrayer)
		forms.POST("/connection-cards", controllers.CreateConnectionCard)
		forms.POST("/contact", controllers.CreateContactSubmission)
		forms.POST("/donations", controllers.CreateDonationRequest)
		forms.POST("/meetings", controllers.CreateMeetingRequest)
		forms.POST("/newsletter", controllers.SubscribeNewsletter)
		forms.POST("/newsletter/unsubscribe", controllers.UnsubscribeNewsletter)
	}

	router.POST("/auth/sign-up", limit("sign-up", 2, 2), controllers.SignUp)
	router.POST("/auth/sign-in", limit("sign-in", 2, 5), controllers.SignIn)
	router.POST("/auth/forgot-password", limit("forgot-password", 2, 2), controllers.ForgotPassword)
	router.POST("/auth/verify-reset-code", limit("verify-reset-code", 5, 5), controllers.VerifyResetCode)
	router.POST("/auth/reset-password", limit("reset-password", 2, 2), controllers.ResetPassword)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(limit("session", 10, 20))
	{
		auth.POST("/auth/sign-out", controllers.SignOut)
		auth.GET("/auth/session", controllers.GetSession)
		auth.POST("/prayers/:prayer_id/pray", controllers.PrayForPrayer)

		dashboard := auth.Group("/dashboard")
		{
			dashboard.GET("/overview", controllers.GetOverview)
			dashboard.GET("/:entity", controllers.GetQueue)
			dashboard.PATCH("/:entity/:id/status", controllers.ChangeStatus)
			dashboard.DELETE("/:entity/:id", controllers.DeleteRecord)

			dashboard.POST("/announcements", controllers.CreateAnnouncement)
			dashboard.PUT("/announcements/:id", controllers.UpdateAnnouncement)
			dashboard.POST("/events", controllers.CreateEvent)
			dashboard.PUT("/events/:id", controllers.UpdateEvent)
			dashboard.POST("/fundraising", controllers.CreateFundraisingCampaign)
			dashboard.PUT("/fundraising/:id", controllers.UpdateFundraisingCampaign)
			dashboard.POST("/live-streams", controllers.CreateLiveStream)
			dashboard.PUT("/live-streams/:id", controllers.UpdateLiveStream)
			dashboard.POST("/devotionals", controllers.CreateDevotional)
			dashboard.PUT("/devotionals/:id", controllers.UpdateDevotional)
			dashboard.POST("/scriptures", controllers.CreateScripture)
			dashboard.PUT("/scriptures/:id", controllers.UpdateScripture)
			dashboard.POST("/schedules", controllers.CreateSchedule)
			dashboard.PUT("/schedules/:id", controllers.UpdateSchedule)
			dashboard.POST("/resources", controllers.CreateResource)
			dashboard.PUT("/resources/:id", controllers.UpdateResource)

			dashboard.GET("/tithe-categories", controllers.GetTitheCategories)
			dashboard.POST("/tithes", controllers.CreateTitheOffering)
			dashboard.POST("/tithes/:id/verify", controllers.VerifyTitheOffering)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	liveStream.Stop()
	if initializers.Redis != nil {
		_ = initializers.Redis.Close()
	}
}
