package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"roomly/internal/analytics/repository"
	"roomly/internal/pricing"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type AnalyticsService interface {
	Report(ctx context.Context, query *model.AnalyticsQuery) (*model.AnalyticsReport, error)
}

type analyticsService struct {
	repo     repository.AnalyticsRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewAnalyticsService(repo repository.AnalyticsRepository, cfg *config.Config) AnalyticsService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	return &analyticsService{
		repo:     repo,
		validate: validate,
		cfg:      cfg,
	}
}

// Report covers whole days in the reporting timezone: from 00:00:00.000 on
// the first day to 23:59:59.999 on the last.
func (s *analyticsService) Report(ctx context.Context, query *model.AnalyticsQuery) (*model.AnalyticsReport, error) {
	if err := s.validate.Struct(query); err != nil {
		s.cfg.Log.Warn("Analytics query validation failed", "from", query.From, "to", query.To, "error", err)
		return nil, translateQueryError(err)
	}

	loc := s.location()
	fromDay, err := time.ParseInLocation(dateLayout, query.From, loc)
	if err != nil {
		return nil, apperrors.Validation("from must be a date in YYYY-MM-DD format", map[string]any{"from": query.From})
	}
	toDay, err := time.ParseInLocation(dateLayout, query.To, loc)
	if err != nil {
		return nil, apperrors.Validation("to must be a date in YYYY-MM-DD format", map[string]any{"to": query.To})
	}
	if fromDay.After(toDay) {
		return nil, apperrors.Validation("From date must be before or equal to to date", map[string]any{
			"from": query.From,
			"to":   query.To,
		})
	}

	from := fromDay
	to := toDay.AddDate(0, 0, 1).Add(-time.Millisecond)

	usage, err := s.repo.RoomUsage(ctx, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to aggregate room usage", "from", from, "to", to, "error", err)
		return nil, apperrors.Internal("Failed to compute analytics", err)
	}

	for _, row := range usage {
		row.TotalHours = pricing.Round(row.TotalHours)
		row.TotalRevenue = pricing.Round(row.TotalRevenue)
	}

	s.cfg.Log.Debug("Analytics report computed", "from", from, "to", to, "rooms", len(usage))
	return &model.AnalyticsReport{From: from, To: to, Rooms: usage}, nil
}

func (s *analyticsService) location() *time.Location {
	if s.cfg.ReportingLocation != nil {
		return s.cfg.ReportingLocation
	}
	return time.UTC
}

func translateQueryError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return apperrors.InvalidInput("Invalid analytics query")
	}

	details := make(map[string]any, len(validationErrs))
	var first string
	for _, fe := range validationErrs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		default:
			message = fe.Error()
		}
		details[field] = message
		if first == "" {
			first = message
		}
	}

	return apperrors.Validation(first, details)
}
