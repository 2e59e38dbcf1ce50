package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/application/session"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/auth"
	"github.com/khoahotran/career-path/pkg/logger"
)

const (
	GinContextKeySession = "session"
)

func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Error(apperror.NewUnauthenticated("authorization header is required"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Error(apperror.NewUnauthenticated("invalid token format"))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected token", zap.Error(err))
			c.Error(apperror.NewUnauthenticated("invalid or expired token"))
			c.Abort()
			return
		}

		sess := session.FromClaims(claims)
		c.Set(GinContextKeySession, sess)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSessionFromGinContext(c).IsAdmin() {
			c.Error(apperror.NewPermissionDenied("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSessionFromGinContext returns nil when the request is anonymous.
func GetSessionFromGinContext(c *gin.Context) *session.Session {
	v, ok := c.Get(GinContextKeySession)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			if errors.Is(err, context.DeadlineExceeded) {
				appErr = apperror.NewAppError(apperror.ErrInternal, "The request timed out", "", err)
			} else {
				appErr = apperror.NewInternal("unhandled error", err)
			}
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= 500 {
			log.Error("Request failed", err, zap.String("path", c.FullPath()), zap.Int("status", status))
		} else {
			log.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.String("error", err.Error()))
		}
		c.JSON(status, appErr.ToJSON())
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if sess := GetSessionFromGinContext(c); sess.Authenticated() {
			fields = append(fields, zap.String("user_id", sess.UserID.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// TimeoutMiddleware puts a deadline on the request context. Store and LLM
// calls observe it through ctx.
func TimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
