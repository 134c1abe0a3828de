package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	countrydomain "github.com/slethware/atlas/internal/country/domain"
)

func (s *Server) RefreshCountries(c *gin.Context) {
	result, err := s.countrySvc.Refresh(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	message := fmt.Sprintf("Successfully refreshed countries. Inserted: %d, Updated: %d",
		result.Inserted, result.Updated)
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (s *Server) ListCountries(c *gin.Context) {
	countries, err := s.countrySvc.List(c.Request.Context(), countrydomain.ListCountriesRequest{
		Region:   c.Query("region"),
		Currency: c.Query("currency"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, countries)
}

func (s *Server) GetCountryByName(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))

	country, err := s.countrySvc.GetByName(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, country)
}

func (s *Server) DeleteCountry(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))

	if err := s.countrySvc.DeleteByName(c.Request.Context(), name); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetStatus(c *gin.Context) {
	status, err := s.countrySvc.Status(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (s *Server) SummaryImage(c *gin.Context) {
	image, err := s.summary.Image()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", image)
}
