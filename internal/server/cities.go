package server

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// @Summary      List Cities
// @Description  List cities with pricing profiles
// @Tags         cities
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /cities [get]
func (s *Server) ListCities(c *gin.Context) {
	names := s.engine.Tables().CityNames()
	sort.Strings(names)

	type cityEntry struct {
		Name    string `json:"name"`
		Profile any    `json:"profile"`
	}
	cities := make([]cityEntry, 0, len(names))
	for _, name := range names {
		cities = append(cities, cityEntry{Name: name, Profile: s.engine.Tables().City(name)})
	}
	respondList(c, cities, nil)
}

// @Summary      Get City Profile
// @Description  Get the pricing profile for a city; unknown cities return the default profile
// @Tags         cities
// @Produce      json
// @Param        name  path  string  true  "City name"
// @Success      200  {object}  map[string]any
// @Router       /cities/{name} [get]
func (s *Server) GetCityProfile(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	respondData(c, gin.H{
		"name":    strings.ToLower(name),
		"profile": s.engine.Tables().City(name),
	})
}
