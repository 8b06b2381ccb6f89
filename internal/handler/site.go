package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model/dto"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/service"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/response"
)

// CreateSite 建站
// POST /v1/admin/sites
func CreateSite(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateSiteRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	params := service.CreateSiteParams{
		Name:            req.Name,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		SupervisorPhone: req.SupervisorPhone,
	}
	if req.RadiusM != nil {
		params.RadiusM = *req.RadiusM
	}

	site, err := service.Sites().Create(ctx, params)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toSiteItem(site))
}

// UpdateSite 站点编辑
// PATCH /v1/admin/sites/:id
func UpdateSite(ctx context.Context, c *app.RequestContext) {
	siteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.SiteNotFound)
		return
	}

	var req dto.UpdateSiteRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	site, err := service.Sites().Update(ctx, siteID, service.UpdateSiteParams{
		Name:            req.Name,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		RadiusM:         req.RadiusM,
		SupervisorPhone: req.SupervisorPhone,
		Active:          req.Active,
	})
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toSiteItem(site))
}

// GetSite 站点详情
// GET /v1/admin/sites/:id
func GetSite(ctx context.Context, c *app.RequestContext) {
	siteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.SiteNotFound)
		return
	}

	site, err := service.Sites().Get(ctx, siteID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toSiteItem(site))
}

// ListSites 站点列表
// GET /v1/admin/sites
func ListSites(ctx context.Context, c *app.RequestContext) {
	cursorID, _ := strconv.ParseInt(c.Query("cursor_id"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	sites, nextCursor, err := service.Sites().List(ctx, cursorID, limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	items := make([]dto.SiteItem, 0, len(sites))
	for _, site := range sites {
		items = append(items, toSiteItem(site))
	}

	meta := map[string]interface{}{}
	if nextCursor != 0 {
		meta["next_cursor"] = strconv.FormatInt(nextCursor, 10)
	}

	response.SuccessWithMeta(ctx, c, items, meta)
}

func toSiteItem(site *model.Site) dto.SiteItem {
	return dto.SiteItem{
		ID:        strconv.FormatInt(site.ID, 10),
		Name:      site.Name,
		Latitude:  site.Latitude,
		Longitude: site.Longitude,
		RadiusM:   site.RadiusM,
		Active:    site.Active,
	}
}
