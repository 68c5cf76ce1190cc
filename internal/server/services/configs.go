package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/repomanager"
)

type ConfigService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewConfigService(db *sql.DB, m repomanager.RepositoryManager) *ConfigService {
	return &ConfigService{db: db, repomanager: m}
}

// AllowRegistration reports whether self sign-up is on. A missing row means off.
func (s *ConfigService) AllowRegistration(ctx context.Context) (bool, error) {
	value, err := s.repomanager.Configs(s.db).Get(ctx, common.ConfigAllowRegistration)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(value, "true"), nil
}

// SetAllowRegistration stores the sign-up flag as "true" or "false".
func (s *ConfigService) SetAllowRegistration(ctx context.Context, allow bool) error {
	if err := s.repomanager.Configs(s.db).Set(ctx, common.ConfigAllowRegistration, strconv.FormatBool(allow)); err != nil {
		return fmt.Errorf("error saving registration flag: %w", err)
	}
	return nil
}

// All returns every setting, with "true" and "false" converted to booleans.
func (s *ConfigService) All(ctx context.Context) (map[string]any, error) {
	rows, err := s.repomanager.Configs(s.db).All(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(rows))
	for _, row := range rows {
		switch row.Value {
		case "true":
			out[row.Key] = true
		case "false":
			out[row.Key] = false
		default:
			out[row.Key] = row.Value
		}
	}
	return out, nil
}
