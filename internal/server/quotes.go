package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	quotedomain "github.com/antarlabs/antar/internal/quote/domain"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

// @Summary      Create Quote
// @Description  Price an order with the selected fee strategy
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body quotedomain.CreateQuoteRequest true "Create Quote Request"
// @Success      200  {object}  quotedomain.QuoteResponse
// @Router       /quotes [post]
func (s *Server) CreateQuote(c *gin.Context) {
	var req quotedomain.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.quoteSvc.CreateQuote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.countQuote(string(resp.Breakdown.Strategy))
	respondData(c, resp)
}

// @Summary      List Quotes
// @Description  List stored quote records
// @Tags         quotes
// @Produce      json
// @Param        strategy    query  string  false  "Strategy"
// @Param        city_name   query  string  false  "City"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  map[string]any
// @Router       /quotes [get]
func (s *Server) ListQuotes(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Strategy string `form:"strategy"`
		CityName string `form:"city_name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	records, pageInfo, err := s.quoteSvc.List(c.Request.Context(), quotedomain.ListRequest{
		Strategy:  strings.TrimSpace(query.Strategy),
		CityName:  strings.ToLower(strings.TrimSpace(query.CityName)),
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, records, &pageInfo)
}

// @Summary      Get Quote
// @Description  Get quote record by ID
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  quotedomain.QuoteRecord
// @Router       /quotes/{id} [get]
func (s *Server) GetQuoteByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	record, err := s.quoteSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, record)
}
