package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"voicedetect/common/audit"
	"voicedetect/common/auth"
	"voicedetect/common/config"
	"voicedetect/common/detector"
	"voicedetect/common/models"
	"voicedetect/common/observe"
)

const serviceVersion = "1.0.0"

// Checker probes one dependency for the readiness endpoint.
type Checker struct {
	Name  string
	Check func(ctx context.Context) error
}

// server holds everything the handlers need. All fields are set once in
// main and read-only afterwards.
type server struct {
	cfg      config.Config
	detector *detector.Detector
	auth     auth.Authenticator
	audit    audit.Recorder
	metrics  *observe.Metrics
	checkers []Checker
	now      func() time.Time
}

// newRouter wires routes and middleware. metricsHandler may be nil.
func newRouter(s *server, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), observe.Middleware(s.metrics))

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", s.cfg.Auth.Header},
		ExposeHeaders: []string{"Content-Length", observe.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)
	if metricsHandler != nil {
		router.GET(s.cfg.Metrics.Path, gin.WrapH(metricsHandler))
	}

	// Swagger documentation
	router.GET("/api/v1/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.Middleware(s.auth, s.cfg.Auth.Header, func(ctx context.Context) {
		s.metrics.RecordRejection(ctx, "auth")
	}))
	{
		apiV1.POST("/detect", s.limitBody, s.handleDetect)
	}
	return router
}

// handleRoot describes the service
// @Summary      Service information
// @Tags         meta
// @Produce      json
// @Success      200 {object} models.ServiceInfo
// @Router       / [get]
func (s *server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, models.ServiceInfo{
		Message: "AI Voice Detection API",
		Version: serviceVersion,
		Status:  "operational",
		Endpoints: map[string]string{
			"detect": "/api/v1/detect",
			"health": "/health",
			"docs":   "/api/v1/docs/index.html",
		},
	})
}

// handleHealth is the liveness probe
// @Summary      Health check
// @Tags         meta
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Router       /health [get]
func (s *server) handleHealth(c *gin.Context) {
	langs := s.detector.Languages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = string(l)
	}
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:             "healthy",
		Timestamp:          s.now().UTC(),
		SupportedLanguages: names,
	})
}

// handleReady reports 200 only when every dependency check passes
func (s *server) handleReady(c *gin.Context) {
	checks := make(map[string]string, len(s.checkers))
	status := http.StatusOK
	for _, ck := range s.checkers {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		err := ck.Check(ctx)
		cancel()
		if err != nil {
			checks[ck.Name] = "fail: " + err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[ck.Name] = "ok"
	}
	state := "ok"
	if status != http.StatusOK {
		state = "fail"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}

// limitBody caps the request body at server.max_payload_bytes.
func (s *server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxPayloadBytes)
	c.Next()
}

// handleDetect classifies an audio clip
// @Summary      Detect AI-generated voice
// @Description  Classify a base64 encoded MP3 clip as AI_GENERATED or HUMAN
// @Tags         detect
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body     models.DetectionRequest true "Audio clip and declared language"
// @Success      200     {object} models.DetectionResponse
// @Failure      400     {object} models.ErrorResponse
// @Failure      401     {object} models.ErrorResponse
// @Failure      413     {object} models.ErrorResponse
// @Router       /detect [post]
func (s *server) handleDetect(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.DetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.reject(c, http.StatusRequestEntityTooLarge, "request", "Request body too large")
			return
		}
		s.reject(c, http.StatusBadRequest, "request", "Invalid request body: "+err.Error())
		return
	}

	lang, err := detector.ParseLanguage(req.Language)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "language", "Unsupported language")
		return
	}
	res, err := s.detector.DetectEncoded(req.AudioBase64, lang)
	if err != nil {
		var langErr *detector.UnsupportedLanguageError
		if errors.As(err, &langErr) {
			s.reject(c, http.StatusBadRequest, "language", "Unsupported language")
			return
		}
		s.reject(c, http.StatusBadRequest, "format", capitalize(err.Error()))
		return
	}

	resp := models.NewDetectionResponse(res)
	s.metrics.RecordDetection(ctx, resp.Classification, resp.Language, res.ProcessingTime.Seconds())
	observe.Logger(c).Info("detection completed",
		"classification", resp.Classification,
		"confidence", resp.Confidence,
		"language", resp.Language,
		"fingerprint", resp.Fingerprint[:16],
	)
	s.audit.Submit(models.NewDetectionRecord(observe.RequestID(c), c.ClientIP(), resp, s.now()))

	c.Header("Content-Language", lang.Tag().String())
	c.JSON(http.StatusOK, resp)
}

// reject writes the error envelope and counts the rejection.
func (s *server) reject(c *gin.Context, status int, reason, msg string) {
	s.metrics.RecordRejection(c.Request.Context(), reason)
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error:      msg,
		StatusCode: status,
		Timestamp:  s.now().UTC(),
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
