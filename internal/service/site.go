package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/repository"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/database"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// SiteService 工地台账维护
type SiteService struct {
	sites SiteStore

	defaultRadiusM float64
}

var (
	siteService *SiteService
	siteOnce    sync.Once
)

func Sites() *SiteService {
	siteOnce.Do(func() {
		siteService = NewSiteService(
			repository.NewSiteRepo(database.DB()),
			config.Cfg.DefaultSiteRadiusMeters,
		)
	})

	return siteService
}

func NewSiteService(sites SiteStore, defaultRadiusM float64) *SiteService {
	return &SiteService{
		sites:          sites,
		defaultRadiusM: defaultRadiusM,
	}
}

type CreateSiteParams struct {
	Name            string
	Latitude        float64
	Longitude       float64
	RadiusM         float64 // 0 时使用配置默认值
	SupervisorPhone string
}

func (s *SiteService) Create(ctx context.Context, params CreateSiteParams) (*model.Site, error) {
	if !utils.ValidateCoordinates(params.Latitude, params.Longitude) {
		return nil, pkgerrors.InvalidCoords
	}

	radius := params.RadiusM
	if radius == 0 {
		radius = s.defaultRadiusM
	}
	if radius <= 0 {
		return nil, pkgerrors.InvalidRadius
	}

	siteID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate site id: %w", err)
	}

	site := &model.Site{
		Name:      params.Name,
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
		RadiusM:   radius,
		Active:    true,
	}
	site.ID = siteID

	if params.SupervisorPhone != "" {
		if !utils.ValidatePhone(params.SupervisorPhone) {
			return nil, pkgerrors.InvalidPhone
		}
		cipher, err := utils.EncryptPhone(params.SupervisorPhone)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt supervisor phone: %w", err)
		}
		hash := utils.HashPhone(params.SupervisorPhone)
		site.SupervisorPhoneCipher = cipher
		site.SupervisorPhoneHash = &hash
	}

	if err := s.sites.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	logger.Logger.Info("Site created",
		zap.Int64("site_id", site.ID),
		zap.String("name", site.Name),
		zap.Float64("radius_m", site.RadiusM),
	)

	return site, nil
}

type UpdateSiteParams struct {
	Name            *string
	Latitude        *float64
	Longitude       *float64
	RadiusM         *float64
	SupervisorPhone *string
	Active          *bool
}

func (s *SiteService) Update(ctx context.Context, siteID int64, params UpdateSiteParams) (*model.Site, error) {
	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Latitude != nil || params.Longitude != nil {
		lat, lon := site.Latitude, site.Longitude
		if params.Latitude != nil {
			lat = *params.Latitude
		}
		if params.Longitude != nil {
			lon = *params.Longitude
		}
		if !utils.ValidateCoordinates(lat, lon) {
			return nil, pkgerrors.InvalidCoords
		}
		fields["latitude"] = lat
		fields["longitude"] = lon
	}
	if params.RadiusM != nil {
		if *params.RadiusM <= 0 {
			return nil, pkgerrors.InvalidRadius
		}
		fields["radius_m"] = *params.RadiusM
	}
	if params.SupervisorPhone != nil {
		if !utils.ValidatePhone(*params.SupervisorPhone) {
			return nil, pkgerrors.InvalidPhone
		}
		cipher, err := utils.EncryptPhone(*params.SupervisorPhone)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt supervisor phone: %w", err)
		}
		fields["supervisor_phone_cipher"] = cipher
		fields["supervisor_phone_hash"] = utils.HashPhone(*params.SupervisorPhone)
	}
	if params.Active != nil {
		fields["active"] = *params.Active
	}

	if len(fields) == 0 {
		return site, nil
	}

	if err := s.sites.Updates(ctx, siteID, fields); err != nil {
		return nil, fmt.Errorf("failed to update site: %w", err)
	}

	return s.sites.GetByID(ctx, siteID)
}

func (s *SiteService) Get(ctx context.Context, siteID int64) (*model.Site, error) {
	return s.sites.GetByID(ctx, siteID)
}

func (s *SiteService) List(ctx context.Context, cursorID int64, limit int) ([]*model.Site, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	sites, err := s.sites.List(ctx, cursorID, limit+1)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sites: %w", err)
	}

	var nextCursor int64
	if len(sites) > limit {
		nextCursor = sites[limit].ID
		sites = sites[:limit]
	}

	return sites, nextCursor, nil
}
