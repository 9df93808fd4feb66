package models

type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	OGImage     string `json:"og_image,omitempty" yaml:"og_image,omitempty"`
}

type SubCategory struct {
	ID          string `json:"id" yaml:"id"`
	CategoryID  string `json:"category_id" yaml:"category"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
