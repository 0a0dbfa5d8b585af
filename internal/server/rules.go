package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

// @Summary      Create Pricing Rule
// @Description  Create a surge pricing rule
// @Tags         pricing_rules
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Idempotency Key"
// @Param        request body ruledomain.CreateRequest true "Create Pricing Rule Request"
// @Success      200  {object}  ruledomain.PricingRule
// @Router       /pricing_rules [post]
func (s *Server) CreatePricingRule(c *gin.Context) {
	var req ruledomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.IdempotencyKey = idempotencyKeyFromHeader(c)

	rule, err := s.ruleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rule)
}

// @Summary      List Pricing Rules
// @Description  List surge pricing rules
// @Tags         pricing_rules
// @Produce      json
// @Param        active      query  bool    false  "Active only"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  map[string]any
// @Router       /pricing_rules [get]
func (s *Server) ListPricingRules(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Active bool `form:"active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rules, pageInfo, err := s.ruleSvc.List(c.Request.Context(), ruledomain.ListRequest{
		ActiveOnly: query.Active,
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, rules, &pageInfo)
}

// @Summary      Get Pricing Rule
// @Description  Get pricing rule by ID
// @Tags         pricing_rules
// @Produce      json
// @Param        id   path      string  true  "Pricing Rule ID"
// @Success      200  {object}  ruledomain.PricingRule
// @Router       /pricing_rules/{id} [get]
func (s *Server) GetPricingRuleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	rule, err := s.ruleSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, rule)
}
