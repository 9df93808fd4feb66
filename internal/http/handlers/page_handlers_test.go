package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pinturas-diamante/catalog-site/internal/seo"
	"github.com/pinturas-diamante/catalog-site/internal/views"
	"github.com/stretchr/testify/assert"
)

func TestRender_TemplateErrorIs500(t *testing.T) {
	SetRenderer(views.MustNew())
	page := views.Page{Site: seo.DefaultSite(), Data: "not product data"}

	tests := []struct {
		name   string
		page   string
		status int
	}{
		{"content fails halfway", views.ProductDetail, http.StatusOK},
		{"not found page", views.ProductDetail, http.StatusNotFound},
		{"unknown page", "no-such-page", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			render(w, tt.status, tt.page, page)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.NotContains(t, w.Body.String(), "<html")
			assert.Contains(t, w.Body.String(), "Error interno")
		})
	}
}
