package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Environment string
	ServiceName string
}

var log = zap.NewNop()

// InitLogger builds the process logger and replaces zap's globals
func InitLogger(config *LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if config.Environment == "production" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	built, err := zcfg.Build(zap.Fields(
		zap.String("service", config.ServiceName),
		zap.String("environment", config.Environment),
	))
	if err != nil {
		return nil, err
	}

	log = built
	zap.ReplaceGlobals(log)
	return log, nil
}

// GetLogger returns the process logger (a no-op logger before InitLogger)
func GetLogger() *zap.Logger {
	return log
}

// Middleware logs every request and stores a request-scoped logger in its context.
// It must run after chi's RequestID middleware.
func Middleware(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := base.With(zap.String("request_id", middleware.GetReqID(r.Context())))
			next.ServeHTTP(ww, r.WithContext(WithContext(r.Context(), reqLogger)))

			reqLogger.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
			)
		})
	}
}
