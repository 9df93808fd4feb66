package seo

import "net/url"

const (
	HomePath    = "/"
	CatalogPath = "/catalog"
	ContactPath = "/contact"
	CartPath    = "/cart"
	SitemapPath = "/sitemap.xml"
	RobotsPath  = "/robots.txt"
)

func ProductPath(productID string) string {
	return "/product/" + url.PathEscape(productID)
}

func CategoryPath(categoryID string) string {
	return CatalogPath + "/" + url.PathEscape(categoryID)
}

func SubCategoryPath(categoryID, subCategoryID string) string {
	return CategoryPath(categoryID) + "/" + url.PathEscape(subCategoryID)
}
