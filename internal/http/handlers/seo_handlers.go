package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	repo "github.com/pinturas-diamante/catalog-site/internal/repo"
	"go.uber.org/zap"
)

// GetProductSEOHandler godoc
// @Summary SEO payload of a product page
// @Tags seo
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} seo.PageData
// @Failure 404 {object} ErrorResponse
// @Router /api/seo/products/{id} [get]
func GetProductSEOHandler(w http.ResponseWriter, r *http.Request) {
	data, err := seoGen.ProductSEOData(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		logger.Error("could not build product seo data", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not build seo data")
		return
	}
	respond(w, http.StatusOK, data)
}

// GetCategorySEOHandler godoc
// @Summary SEO payload of a category page
// @Tags seo
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} seo.PageData
// @Failure 404 {object} ErrorResponse
// @Router /api/seo/categories/{id} [get]
func GetCategorySEOHandler(w http.ResponseWriter, r *http.Request) {
	data, err := seoGen.CategorySEOData(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		logger.Error("could not build category seo data", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not build seo data")
		return
	}
	respond(w, http.StatusOK, data)
}

// GetOrganizationSchemaHandler godoc
// @Summary Organization JSON-LD
// @Tags seo
// @Produce json
// @Success 200 {object} seo.Organization
// @Router /api/seo/organization [get]
func GetOrganizationSchemaHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, seoGen.Site().OrganizationSchema())
}

// GetLocalBusinessSchemaHandler godoc
// @Summary LocalBusiness JSON-LD
// @Tags seo
// @Produce json
// @Success 200 {object} seo.LocalBusiness
// @Router /api/seo/local-business [get]
func GetLocalBusinessSchemaHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, seoGen.Site().LocalBusinessSchema())
}

// SitemapHandler godoc
// @Summary sitemap.xml
// @Tags seo
// @Produce xml
// @Success 200 {string} string "sitemap"
// @Router /sitemap.xml [get]
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	out, err := seoGen.Sitemap(time.Now())
	if err != nil {
		logger.Error("could not build sitemap", zap.Error(err))
		http.Error(w, "could not build sitemap", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(out)
}

// RobotsHandler godoc
// @Summary robots.txt
// @Tags seo
// @Produce plain
// @Success 200 {string} string "robots"
// @Router /robots.txt [get]
func RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(seoGen.Site().RobotsTxt()))
}
