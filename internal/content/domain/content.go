package domain

import (
	"errors"
	"strings"
)

// HeroSlide is one slide of the home page carousel.
type HeroSlide struct {
	ID       string `json:"id"`
	ImgSrc   string `json:"img_src"`
	Alt      string `json:"alt"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"cta_text"`
	CTALink  string `json:"cta_link"`
}

// Validate ensures the slide adheres to content constraints.
func (s HeroSlide) Validate() error {
	if strings.TrimSpace(s.ImgSrc) == "" {
		return errors.New("img_src is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// FeaturedCategory is a category tile shown on the home page.
type FeaturedCategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Href   string `json:"href"`
	ImgSrc string `json:"img_src"`
}

func (c FeaturedCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(c.Href) == "" {
		return errors.New("href is required")
	}
	if strings.TrimSpace(c.ImgSrc) == "" {
		return errors.New("img_src is required")
	}
	return nil
}

// Banner is a promotional strip placed between home page sections.
type Banner struct {
	ID     string `json:"id"`
	ImgSrc string `json:"img_src"`
	Alt    string `json:"alt"`
	Href   string `json:"href"`
}

func (b Banner) Validate() error {
	if strings.TrimSpace(b.ImgSrc) == "" {
		return errors.New("img_src is required")
	}
	return nil
}
