package router

import (
	"net/http"
	"time"

	"github.com/hadiajavedd/SaySoPrototype/internal/config"
	"github.com/hadiajavedd/SaySoPrototype/internal/handlers"
	"github.com/hadiajavedd/SaySoPrototype/internal/utils"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
}

// Setup wires middleware, templates, and every route onto a gin engine.
// templatesGlob points at the HTML templates; tests pass their own path.
func Setup(log *zap.Logger, templatesGlob string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secret := config.Conf.Server.SessionSecret
	if secret == "" {
		// No configured secret means sessions won't survive a restart.
		generated, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate session secret", zap.Error(err))
		}
		secret = generated
		log.Warn("No session secret configured, generated an ephemeral one")
	}

	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("sayso_session", store))
	router.Use(UserLoaderMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	router.LoadHTMLGlob(templatesGlob)
	router.Static("/assets", "./assets")

	authHandler := handlers.NewAuthHandler(log)
	pageHandler := handlers.NewPageHandler(log)
	responseHandler := handlers.NewResponseHandler(log)
	shareHandler := handlers.NewShareHandler(log)
	chartHandler := handlers.NewChartHandler(log)
	apiHandler := handlers.NewAPIHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	// Login and signup
	router.GET("/", authHandler.ShowLoginPage)
	router.POST("/", limiter, authHandler.Login)
	router.GET("/signup", authHandler.ShowSignupPage)
	router.POST("/signup", limiter, authHandler.Signup)
	router.GET("/logout", authHandler.Logout)

	// Public respondent flow
	router.GET("/take-questionnaire/:id", responseHandler.ShowTakePage)
	router.POST("/take-questionnaire/:id", responseHandler.SubmitResponse)

	authorized := router.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.POST("/delete-account", authHandler.DeleteAccount)
		authorized.GET("/homepage", pageHandler.Homepage)
		authorized.GET("/profile", pageHandler.Profile)
		authorized.GET("/create-questionnaire", pageHandler.CreateQuestionnaire)
		authorized.GET("/help", pageHandler.Help)
		authorized.GET("/view-questionnaire/:id", pageHandler.ViewQuestionnaire)
		authorized.GET("/edit-questionnaire/:id", pageHandler.EditQuestionnaire)
		authorized.GET("/responses/:id", responseHandler.ShowResponses)
		authorized.GET("/responses/:id/chart", chartHandler.SubmissionChart)
		authorized.GET("/share/:id", shareHandler.ShowSharePage)
	}

	// JSON API used by the page scripts. Handlers do their own auth checks
	// so anonymous callers get JSON errors, not redirects.
	api := router.Group("/api")
	{
		api.GET("/me", apiHandler.Me)
		api.GET("/my-questionnaires", apiHandler.MyQuestionnaires)
		api.GET("/questionnaire/:id", apiHandler.GetQuestionnaire)
		api.PUT("/questionnaire/:id", apiHandler.UpdateQuestionnaire)
		api.POST("/questionnaires", apiHandler.CreateQuestionnaire)
		api.DELETE("/questionnaires/:id", apiHandler.DeleteQuestionnaire)
	}

	return router
}
