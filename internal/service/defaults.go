package service

import (
	"strings"

	"github.com/reflet/internal/db"
)

type galleryDefault struct {
	title, description, url, category string
}

var galleryDefaults = []galleryDefault{
	{"Terres agricoles de Nkoltang", "Vue panoramique du site agricole", "https://images.unsplash.com/photo-1500937386664-56d1dfef3854?w=800", GalleryCategoryAgriculture},
	{"Récolte des légumes", "Les bénéficiaires récoltent les produits", "https://images.unsplash.com/photo-1592419044706-39796d40f98c?w=800", GalleryCategoryAgriculture},
	{"Formation agricole", "Séance de formation sur les techniques de culture", "https://images.unsplash.com/photo-1523348837708-15d4a09cfac2?w=800", GalleryCategoryAgriculture},
	{"Danse traditionnelle", "Spectacle de danse gabonaise", "https://images.unsplash.com/photo-1545959570-a94084071b5d?w=800", GalleryCategoryCulture},
	{"Festival culturel", "Performance lors d'un festival local", "https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?w=800", GalleryCategoryCulture},
	{"Instruments traditionnels", "Musiciens jouant des instruments gabonais", "https://images.unsplash.com/photo-1511379938547-c1f69419868d?w=800", GalleryCategoryCulture},
	{"Restaurant Les Délices du Gabon", "Ambiance chaleureuse du restaurant", "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800", GalleryCategoryRestaurant},
	{"Plat signature", "Cuisine gabonaise traditionnelle", "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=800", GalleryCategoryRestaurant},
	{"Équipe de cuisiniers", "Notre équipe en action", "https://images.unsplash.com/photo-1556910103-1c02745aae4d?w=800", GalleryCategoryRestaurant},
	{"Travail communautaire", "Les femmes préparent les semis", "https://images.unsplash.com/photo-1464226184884-fa280b87c399?w=800", GalleryCategoryAgriculture},
	{"Marché local", "Vente des produits de la coopérative", "https://images.unsplash.com/photo-1488459716781-31db52582fe9?w=800", GalleryCategoryAgriculture},
	{"Célébration culturelle", "Fête traditionnelle gabonaise", "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=800", GalleryCategoryCulture},
}

// DefaultGalleryImages returns the built-in photo set, optionally filtered by category.
func DefaultGalleryImages(category string) []db.GalleryImage {
	category = strings.ToLower(strings.TrimSpace(category))
	items := make([]db.GalleryImage, 0, len(galleryDefaults))
	for i, d := range galleryDefaults {
		if category != "" && category != d.category {
			continue
		}
		item := db.GalleryImage{
			Title:        d.title,
			Description:  d.description,
			ImageURL:     d.url,
			ThumbnailURL: d.url,
			Category:     d.category,
		}
		item.ID = uint(i + 1)
		items = append(items, item)
	}
	return items
}

// DefaultProjects returns the project cards shown before any project is created.
func DefaultProjects() []db.Project {
	return []db.Project{
		{
			Title:       "Développement de la Coopérative Agricole",
			DateLabel:   "En cours",
			Category:    "Agriculture",
			Description: "Extension de notre site agricole de Nkoltang avec de nouvelles parcelles et formation de 50 nouvelles bénéficiaires aux techniques de culture maraîchère.",
			Icon:        "Sprout",
			Color:       "primary",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Title:       "Prix Cuistos Engagés 2022",
			DateLabel:   "Juin 2022",
			Category:    "Restaurant",
			Description: "Notre restaurant 'Les Délices du Gabon' a été finaliste du prix des Cuistos Engagés organisé par MIIMOSA à Paris, récompensant notre approche écoresponsable.",
			Icon:        "Award",
			Color:       "gold",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Title:       "Don de Matériel Agricole",
			DateLabel:   "2023",
			Category:    "Partenariat",
			Description: "Réception d'un don de matériel agricole de l'ONG IDRC AFRICA permettant d'améliorer significativement nos capacités de production à Nkoltang.",
			Icon:        "Package",
			Color:       "ocean",
			SortOrder:   3,
			IsActive:    true,
		},
	}
}
