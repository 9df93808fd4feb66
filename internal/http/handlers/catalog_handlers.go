package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	repo "github.com/pinturas-diamante/catalog-site/internal/repo"
	"go.uber.org/zap"
)

// GetCategoriesHandler godoc
// @Summary List catalog categories
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} ErrorResponse
// @Router /api/categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := catalogRepo.Categories()
	if err != nil {
		logger.Error("could not fetch categories", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch categories")
		return
	}
	respond(w, http.StatusOK, categories)
}

// GetSubCategoriesHandler godoc
// @Summary List the subcategories of a category
// @Tags catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} models.SubCategory
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/categories/{id}/subcategories [get]
func GetSubCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := catalogRepo.SubCategories(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		logger.Error("could not fetch subcategories", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch subcategories")
		return
	}
	respond(w, http.StatusOK, subs)
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags catalog
// @Produce json
// @Param category query string false "Category ID"
// @Param subcategory query string false "Subcategory ID"
// @Param q query string false "Search by name or tag, accent insensitive"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {array} ValidationError
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, err := parseIntParam(q.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}
	limit, err := parseIntParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	if validationErrors := validateProductQuery(offset, limit); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	filter := repo.ProductFilter{
		CategoryID:    q.Get("category"),
		SubCategoryID: q.Get("subcategory"),
		Query:         q.Get("q"),
		Offset:        offset,
		Limit:         limit,
	}

	products, total, err := catalogRepo.Filter(filter)
	if err != nil {
		logger.Error("could not filter products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not filter products")
		return
	}

	respond(w, http.StatusOK, ProductsSearchResult{
		Data: products,
		Meta: Meta{TotalCount: total},
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := catalogRepo.ProductByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		logger.Error("could not fetch product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	respond(w, http.StatusOK, product)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	products, err := catalogRepo.Products()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}
	respond(w, http.StatusOK, HealthResponse{Status: "ok", Products: len(products)})
}
