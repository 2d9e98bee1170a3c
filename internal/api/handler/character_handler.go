package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/core/ports"
)

// CharacterHandler serves the composite character lookup.
type CharacterHandler struct {
	service ports.CharacterService
}

func NewCharacterHandler(service ports.CharacterService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// compositeRequest mirrors the query string of GET /api/maplestory.
// characterName is checked by the service so its message is localized.
type compositeRequest struct {
	CharacterName string `query:"characterName"`
	Date          string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Section       string `query:"section" validate:"omitempty,max=32"`
	OpaqueID      string `query:"ocid" validate:"omitempty,max=128"`
	Module        string `query:"module" validate:"omitempty,max=32"`
	// SkillModule is the legacy name of module.
	SkillModule string `query:"skillModule" validate:"omitempty,max=32"`
}

func (r compositeRequest) toQuery() ports.CompositeQuery {
	module := r.Module
	if module == "" {
		module = r.SkillModule
	}
	return ports.CompositeQuery{
		CharacterName: r.CharacterName,
		Date:          r.Date,
		Section:       r.Section,
		OpaqueID:      r.OpaqueID,
		Module:        module,
	}
}

// Get handles GET /api/maplestory.
//
// @Summary      Look up a character
// @Description  Resolves the character and returns every requested section. Failed sections or modules are reported in errors next to the data that did load.
// @Tags         characters
// @Produce      json
// @Param        characterName  query     string  true   "In-game character name"
// @Param        date           query     string  false  "Snapshot date (YYYY-MM-DD)"
// @Param        section        query     string  false  "Restrict to one section"  Enums(basic, stat, equipment, skills, union)
// @Param        ocid           query     string  false  "Known opaque id, skips name resolution"
// @Param        module         query     string  false  "Skill module, requires section=skills"  Enums(linkSkills, vmatrix, hexamatrix, hexamatrixStat)
// @Success      200            {object}  domain.CompositeResponse
// @Header       200            {string}  X-Cache  "HIT or MISS"
// @Failure      400            {object}  api.errorResponse
// @Failure      404            {object}  api.errorResponse
// @Failure      500            {object}  api.errorResponse
// @Router       /api/maplestory [get]
func (h *CharacterHandler) Get(c echo.Context) error {
	var req compositeRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.service.GetCompositeResponse(c.Request().Context(), req.toQuery())
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	c.Response().Header().Set("X-Cache", cacheHeader(resp))
	return c.JSON(http.StatusOK, resp)
}

func cacheHeader(resp *domain.CompositeResponse) string {
	if resp.Cached {
		return "HIT"
	}
	return "MISS"
}
