package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pinturas-diamante/catalog-site/internal/cart"
	"github.com/pinturas-diamante/catalog-site/internal/models"
	"github.com/pinturas-diamante/catalog-site/internal/order"
	repo "github.com/pinturas-diamante/catalog-site/internal/repo"
	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"go.uber.org/zap"
)

// NotAvailableMessage is shown for unknown categories, subcategories and products.
const NotAvailableMessage = "Contenido no disponible."

const noIndex = "noindex, nofollow"

// newPage fills the parts every page shares: navigation, footer, cart badge
// and the search query.
func newPage(r *http.Request, data seo.PageData, content any) views.Page {
	p := views.Page{
		Site:      seoGen.Site(),
		SEO:       data,
		Robots:    seo.RobotsDirectives(),
		Locations: locations,
		Query:     strings.TrimSpace(r.URL.Query().Get("q")),
		Data:      content,
	}
	if categories, err := catalogRepo.Categories(); err == nil {
		p.Categories = categories
	}
	if c, err := cartService.Get(r.Context(), SessionID(r)); err == nil {
		p.CartCount = c.TotalItems
	}
	return p
}

// render writes the page only once it rendered completely.
func render(w http.ResponseWriter, status int, name string, page views.Page) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, page); err != nil {
		logger.Error("could not render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Error interno", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func renderNotAvailable(w http.ResponseWriter, r *http.Request) {
	data := seoGen.PageSEOData(r.URL.Path, NotAvailableMessage, "")
	data.StructuredData = nil
	page := newPage(r, data, views.NotFoundData{Message: NotAvailableMessage})
	page.Robots = noIndex
	render(w, http.StatusNotFound, views.NotFound, page)
}

func pageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repo.ErrCategoryNotFound) ||
		errors.Is(err, repo.ErrSubCategoryNotFound) ||
		errors.Is(err, repo.ErrProductNotFound) ||
		errors.Is(err, seo.ErrSubCategoryMismatch) ||
		errors.Is(err, seo.ErrIncompleteCatalog) {
		renderNotAvailable(w, r)
		return
	}
	logger.Error("could not build page", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Error interno", http.StatusInternalServerError)
}

func search(r *http.Request, categoryID string) ([]models.Product, error) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		return nil, nil
	}
	products, _, err := catalogRepo.Filter(repo.ProductFilter{CategoryID: categoryID, Query: q})
	return products, err
}

func AboutPageHandler(w http.ResponseWriter, r *http.Request) {
	s := seoGen.Site()
	data := seoGen.PageSEOData(seo.HomePath, "", s.Business.Description, s.LocalBusinessSchema())
	render(w, http.StatusOK, views.About, newPage(r, data, views.AboutData{Business: business}))
}

func ContactPageHandler(w http.ResponseWriter, r *http.Request) {
	s := seoGen.Site()
	data := seoGen.PageSEOData(seo.ContactPath, "Contacto", "", s.LocalBusinessSchema())
	render(w, http.StatusOK, views.Contact, newPage(r, data, nil))
}

func CatalogPageHandler(w http.ResponseWriter, r *http.Request) {
	results, err := search(r, "")
	if err != nil {
		pageError(w, r, err)
		return
	}
	data := seoGen.PageSEOData(seo.CatalogPath, "Catálogo", "")
	render(w, http.StatusOK, views.Catalog, newPage(r, data, views.CatalogData{Results: results}))
}

func SubCategoriesPageHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	c, err := catalogRepo.CategoryByID(categoryID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	subs, err := catalogRepo.SubCategories(categoryID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	results, err := search(r, categoryID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	data, err := seoGen.CategorySEOData(categoryID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	render(w, http.StatusOK, views.SubCategories, newPage(r, data, views.SubCategoriesData{
		Category:      c,
		SubCategories: subs,
		Results:       results,
	}))
}

func ProductListPageHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	subCategoryID := chi.URLParam(r, "subCategoryId")

	data, err := seoGen.SubCategorySEOData(categoryID, subCategoryID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	c, err := catalogRepo.CategoryByID(categoryID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	sub, err := catalogRepo.SubCategoryByID(subCategoryID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	products, _, err := catalogRepo.Filter(repo.ProductFilter{
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Query:         r.URL.Query().Get("q"),
	})
	if err != nil {
		pageError(w, r, err)
		return
	}
	render(w, http.StatusOK, views.ProductList, newPage(r, data, views.ProductListData{
		Category:    c,
		SubCategory: sub,
		Products:    products,
	}))
}

func ProductDetailPageHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	data, err := seoGen.ProductSEOData(productID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	p, err := catalogRepo.ProductByID(productID)
	if err != nil {
		pageError(w, r, err)
		return
	}
	content := views.ProductData{Product: p}
	content.Category, _ = catalogRepo.CategoryByID(p.CategoryID)
	content.SubCategory, _ = catalogRepo.SubCategoryByID(p.SubCategoryID)
	render(w, http.StatusOK, views.ProductDetail, newPage(r, data, content))
}

func CartPageHandler(w http.ResponseWriter, r *http.Request) {
	c, err := cartService.Get(r.Context(), SessionID(r))
	if err != nil {
		logger.Error("could not load cart", zap.Error(err))
		c = cart.Cart{Items: []models.CartItem{}}
	}

	content := views.CartData{Cart: c}
	receipt, ok, err := orderService.TakeReceipt(r.Context(), SessionID(r))
	if err != nil {
		logger.Error("could not load receipt", zap.Error(err))
	}
	if ok {
		content.Receipt = &receipt
	}
	q := r.URL.Query()

	data := seoGen.PageSEOData(seo.CartPath, "Carrito", "")
	data.StructuredData = nil
	page := newPage(r, data, content)
	page.Robots = noIndex
	if q.Get("aviso") == "vacio" {
		page.Notice = "Tu carrito está vacío."
	}
	render(w, http.StatusOK, views.Cart, page)
}

// NotFoundRedirectHandler sends unknown paths to the home page.
func NotFoundRedirectHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, seo.HomePath, http.StatusSeeOther)
}

// redirectTarget accepts only local absolute paths.
func redirectTarget(r *http.Request, fallback string) string {
	target := r.FormValue("redirect")
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return target
}

func formError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrProductNotFound), errors.Is(err, cart.ErrItemNotInCart):
		renderNotAvailable(w, r)
	case errors.Is(err, cart.ErrInvalidQuantity):
		http.Error(w, "Cantidad inválida", http.StatusBadRequest)
	default:
		logger.Error("cart form failed", zap.Error(err))
		http.Error(w, "Error interno", http.StatusInternalServerError)
	}
}

func AddToCartFormHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := cartService.Add(r.Context(), SessionID(r), r.FormValue("product_id")); err != nil {
		formError(w, r, err)
		return
	}
	http.Redirect(w, r, redirectTarget(r, seo.CartPath), http.StatusSeeOther)
}

func UpdateCartFormHandler(w http.ResponseWriter, r *http.Request) {
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		http.Error(w, "Cantidad inválida", http.StatusBadRequest)
		return
	}
	if _, err := cartService.SetQuantity(r.Context(), SessionID(r), r.FormValue("product_id"), quantity); err != nil {
		formError(w, r, err)
		return
	}
	http.Redirect(w, r, redirectTarget(r, seo.CartPath), http.StatusSeeOther)
}

func RemoveFromCartFormHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := cartService.Remove(r.Context(), SessionID(r), r.FormValue("product_id")); err != nil {
		formError(w, r, err)
		return
	}
	http.Redirect(w, r, redirectTarget(r, seo.CartPath), http.StatusSeeOther)
}

func ClearCartFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := cartService.Clear(r.Context(), SessionID(r)); err != nil {
		formError(w, r, err)
		return
	}
	http.Redirect(w, r, redirectTarget(r, seo.CartPath), http.StatusSeeOther)
}

func CheckoutFormHandler(w http.ResponseWriter, r *http.Request) {
	_, err := orderService.Place(r.Context(), SessionID(r))
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		http.Redirect(w, r, seo.CartPath+"?aviso=vacio", http.StatusSeeOther)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Pedido cancelado", http.StatusServiceUnavailable)
		return
	case err != nil:
		formError(w, r, err)
		return
	}

	http.Redirect(w, r, seo.CartPath, http.StatusSeeOther)
}
