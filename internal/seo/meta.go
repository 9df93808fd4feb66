package seo

import "github.com/pinturas-diamante/catalog-site/internal/models"

const robotsDirectives = "index, follow, max-image-preview:large, max-snippet:-1, max-video-preview:-1"

// ProductTitle is the social/SEO title of a product.
func (s Site) ProductTitle(p models.Product) string {
	return Value(p.OGTitle, p.Name+" - "+s.Business.Name)
}

func ProductDescription(p models.Product) string {
	return Value(p.OGDescription, p.Description)
}

// OpenGraphTags follows https://ogp.me for a product page.
func (s Site) OpenGraphTags(p models.Product) Tags {
	return Tags{
		{"og:type", "product"},
		{"og:url", s.AbsoluteURL(ProductPath(p.ID))},
		{"og:title", s.ProductTitle(p)},
		{"og:description", ProductDescription(p)},
		{"og:image", s.ProductImage(p)},
		{"og:image:width", "1200"},
		{"og:image:height", "630"},
		{"og:image:type", "image/jpeg"},
		{"og:site_name", s.SiteName},
		{"og:locale", s.Locale},
	}
}

// PageOpenGraphTags is the website-typed variant used by non-product pages.
func (s Site) PageOpenGraphTags(path, title, description, image string) Tags {
	return Tags{
		{"og:type", "website"},
		{"og:url", s.AbsoluteURL(path)},
		{"og:title", title},
		{"og:description", description},
		{"og:image", s.AbsoluteImageURL(image)},
		{"og:site_name", s.SiteName},
		{"og:locale", s.Locale},
	}
}

func (s Site) TwitterCardTags(p models.Product) Tags {
	return s.twitterTags(s.ProductTitle(p), ProductDescription(p), s.ProductImage(p))
}

func (s Site) PageTwitterCardTags(title, description, image string) Tags {
	return s.twitterTags(title, description, s.AbsoluteImageURL(image))
}

func (s Site) twitterTags(title, description, image string) Tags {
	return Tags{
		{"twitter:card", "summary_large_image"},
		{"twitter:title", title},
		{"twitter:description", description},
		{"twitter:image", image},
		{"twitter:creator", s.Social.Twitter},
		{"twitter:site", s.Social.Twitter},
	}
}

// RobotsMeta returns canonical, robots and googlebot values for a product page.
func (s Site) RobotsMeta(productID string) Tags {
	return Tags{
		{"canonical", s.AbsoluteURL(ProductPath(productID))},
		{"robots", robotsDirectives},
		{"googlebot", robotsDirectives},
	}
}

// RobotsDirectives is the robots meta content used on indexable pages.
func RobotsDirectives() string {
	return robotsDirectives
}
