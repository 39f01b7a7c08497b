package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"portal/middlewares"
	"portal/models"
	"portal/utils"
	"portal/verification"
)

// dependency container shared by all handlers
type deps struct {
	users    models.UserRepository
	posts    models.PostRepository
	regs     models.RegistrationRepository
	events   models.EventRepository
	verifier verification.Verifier
	inv      *utils.CacheInvalidator
}

// RegisterRoutes wires repositories, the verification flow, rate limits
// and quotas onto the gin engine. Everything is passed in from main so
// tests can substitute fakes.
func RegisterRoutes(
	server *gin.Engine,
	u models.UserRepository,
	p models.PostRepository,
	r models.RegistrationRepository,
	e models.EventRepository,
	v verification.Verifier,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
) {
	d := &deps{users: u, posts: p, regs: r, events: e, verifier: v, inv: inv}

	// ===== global per-IP limit =====
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// ===== stricter buckets on credential endpoints =====
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/signup",
		authLimiter.Middleware(func(c *gin.Context) string { return "signup:" + c.ClientIP() }),
		d.signup,
	)
	server.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)

	// ===== authenticated group: per-user limit + daily quota =====
	auth := server.Group("/")
	auth.Use(middlewares.Authenticate) // puts userId/userEmail into context

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	auth.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64("userId"), 10)
	}))

	auth.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64("userId")
			if uid == 0 {
				return ""
			}
			return fmt.Sprintf("quota:user:%d:day", uid)
		},
	}))

	// public reads (cached upstream by ResponseCache)
	server.GET("/posts", d.getPosts)
	server.GET("/events", d.getEvents)
	server.GET("/events/:id", d.getEvent)

	// feed
	auth.POST("/posts", d.createPost)
	auth.PUT("/posts/:id", d.updatePost)
	auth.DELETE("/posts/:id", d.deletePost)

	// events
	auth.POST("/events", d.createEvent)
	auth.PUT("/events/:id", d.updateEvent)
	auth.DELETE("/events/:id", d.deleteEvent)

	// registration: begin emailed-code verification, submit the code,
	// abandon, unregister (no code), and the refresh read
	auth.POST("/events/:id/register", d.registerForEvent)
	auth.POST("/events/:id/verify", d.verifyRegistration)
	auth.DELETE("/events/:id/verification", d.abandonVerification)
	auth.DELETE("/events/:id/register", d.cancelRegistration)
	auth.GET("/registrations", d.getRegistrations)

	auth.GET("/me", d.me)
}

/* --------------------- Auth --------------------- */

// POST /signup
func (d *deps) signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	u := models.User{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := d.users.Create(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save user."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}

// POST /login
func (d *deps) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	user, err := d.users.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not authenticate user."})
		return
	}

	token, err := utils.GenerateToken(user.Email, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token})
}

// GET /me
func (d *deps) me(c *gin.Context) {
	user, err := d.users.GetByID(c.GetInt64("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch profile."})
		return
	}
	c.JSON(http.StatusOK, user)
}
