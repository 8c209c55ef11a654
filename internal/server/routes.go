package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/berfenger/sen6xgen/internal/config"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/service"
	"github.com/berfenger/sen6xgen/internal/render"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxConfigBytes = 1 << 20

type violationsResponse struct {
	Violations []*domain.FieldError `json:"violations"`
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.POST("/generate", s.GenerateHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.generatorActor, domain.ActorHealthRequest{}, s.buildTimeout).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

// GenerateHandler validates the YAML configuration in the request body and answers
// with the wiring in the format given by the format query parameter (json by default).
func (s *Server) GenerateHandler(c echo.Context) error {
	format := config.FORMAT_JSON
	if q := c.QueryParam("format"); q != "" {
		f, err := config.CheckFormat(q)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		format = f
	}

	source, err := io.ReadAll(io.LimitReader(c.Request().Body, maxConfigBytes))
	if err != nil {
		return c.String(http.StatusBadRequest, "unable to read request body")
	}

	res, err := s.rootContext.RequestFuture(s.generatorActor, domain.GenerateRequest{Source: source}, s.buildTimeout).Result()
	if err != nil {
		s.logger.Error("generator request failed", zap.Error(err))
		return c.String(http.StatusServiceUnavailable, "generator unavailable")
	}
	resp, ok := res.(domain.GenerateResponse)
	if !ok {
		return c.String(http.StatusInternalServerError, "unexpected generator response")
	}

	if resp.HasResponseError() {
		if service.IsViolation(resp.GetResponseError()) {
			return c.JSON(http.StatusUnprocessableEntity, violationsResponse{
				Violations: domain.Violations(resp.GetResponseError()),
			})
		}
		return c.String(http.StatusInternalServerError, resp.GetResponseError().Error())
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, format, resp.Build); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, contentType(format), buf.Bytes())
}

func contentType(format string) string {
	switch format {
	case config.FORMAT_JSON:
		return echo.MIMEApplicationJSONCharsetUTF8
	case config.FORMAT_YAML:
		return "application/yaml; charset=utf-8"
	}
	return echo.MIMETextPlainCharsetUTF8
}
