package content

// Bundled static images used as image field defaults.
const (
	ImageHeroAgriculture = "/static/images/hero-agriculture.jpg"
	ImageFarmerWoman     = "/static/images/farmer-woman.jpg"
	ImageRestaurant      = "/static/images/restaurant.jpg"
	ImageCulturalDance   = "/static/images/cultural-dance.jpg"
)

func text(key, label, def string) Field {
	return Field{Key: key, Label: label, Kind: KindPlainText, Default: def}
}

func rich(key, label, def string) Field {
	return Field{Key: key, Label: label, Kind: KindRichText, Default: def}
}

func image(key, label, def string) Field {
	return Field{Key: key, Label: label, Kind: KindImage, Default: def}
}

// Default is the compiled schema of every editable page of the site.
var Default = MustSchema(
	Page{
		Key:   "accueil",
		Label: "Accueil",
		Path:  "/",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("badge", "Badge", "Association Loi 1901"),
				text("title", "Titre", "Ensemble, cultivons"),
				text("title_highlight", "Titre (partie colorée)", "l'avenir du Gabon"),
				text("subtitle", "Sous-titre", "Reflet du Gabon œuvre pour l'autonomie alimentaire, la valorisation culturelle et l'insertion professionnelle des jeunes et des femmes au Gabon."),
				image("image", "Image de fond", ImageHeroAgriculture),
				text("stat1_value", "Stat 1 - Valeur", "500+"),
				text("stat1_label", "Stat 1 - Label", "Bénéficiaires"),
				text("stat2_value", "Stat 2 - Valeur", "3"),
				text("stat2_label", "Stat 2 - Label", "Piliers d'action"),
				text("stat3_value", "Stat 3 - Valeur", "2018"),
				text("stat3_label", "Stat 3 - Label", "Année de création"),
			}},
			{Key: "mission", Label: "Section Mission", Fields: []Field{
				text("badge", "Badge", "Notre Mission"),
				text("title", "Titre", "Un engagement pour"),
				text("title_highlight", "Titre (partie colorée)", "un Gabon durable"),
				rich("description", "Description", "Reflet du Gabon est une association loi 1901 qui agit pour l'autonomie alimentaire, la valorisation culturelle et l'insertion professionnelle des jeunes et des femmes au Gabon."),
				image("image", "Image", ImageFarmerWoman),
				text("floating_value", "Carte flottante - Valeur", "15+"),
				text("floating_text", "Carte flottante - Texte", "Années d'engagement"),
			}},
			{Key: "pillars", Label: "Nos 3 Piliers", Fields: []Field{
				text("badge", "Badge", "Nos 3 Piliers"),
				text("title", "Titre", "Les Moyens de Notre Action"),
				text("description", "Description", "Trois initiatives complémentaires pour construire un avenir durable et solidaire entre la France et le Gabon."),
				text("pillar1_title", "Pilier 1 - Titre", "Coopérative Agricole"),
				text("pillar1_subtitle", "Pilier 1 - Sous-titre", "Nkoltang, Gabon"),
				text("pillar1_description", "Pilier 1 - Description", "Formation et accompagnement des jeunes et des femmes dans l'agriculture durable. Lutte contre la faim et la pauvreté en zone rurale."),
				image("pillar1_image", "Pilier 1 - Image", ImageFarmerWoman),
				text("pillar2_title", "Pilier 2 - Titre", "Les Délices du Gabon"),
				text("pillar2_subtitle", "Pilier 2 - Sous-titre", "Restaurant Associatif"),
				text("pillar2_description", "Pilier 2 - Description", "Gastronomie africaine authentique en Normandie. Finaliste du prix 'Cuistos Engagés' pour notre approche écoresponsable."),
				image("pillar2_image", "Pilier 2 - Image", ImageRestaurant),
				text("pillar3_title", "Pilier 3 - Titre", "Groupe Culturel"),
				text("pillar3_subtitle", "Pilier 3 - Sous-titre", "Ambassadeurs Culturels"),
				text("pillar3_description", "Pilier 3 - Description", "Valorisation de la culture gabonaise à travers les danses traditionnelles, la musique et les animations culturelles."),
				image("pillar3_image", "Pilier 3 - Image", ImageCulturalDance),
			}},
			{Key: "impact", Label: "Section Impact", Fields: []Field{
				text("title", "Titre", "Notre Impact en Chiffres"),
				text("description", "Description", "Des résultats concrets qui témoignent de notre engagement"),
				text("stat1_value", "Stat 1 - Valeur", "500+"),
				text("stat1_label", "Stat 1 - Label", "Femmes formées"),
				text("stat2_value", "Stat 2 - Valeur", "50"),
				text("stat2_label", "Stat 2 - Label", "Hectares cultivés"),
				text("stat3_value", "Stat 3 - Valeur", "1000+"),
				text("stat3_label", "Stat 3 - Label", "Repas servis"),
				text("stat4_value", "Stat 4 - Valeur", "20+"),
				text("stat4_label", "Stat 4 - Label", "Événements culturels"),
			}},
			{Key: "cta", Label: "Section Appel à l'action", Fields: []Field{
				text("title", "Titre", "Rejoignez notre mission"),
				text("description", "Description", "Chaque geste compte. Ensemble, construisons un avenir meilleur pour le Gabon."),
			}},
		},
	},
	Page{
		Key:   "moyens",
		Label: "Nos Moyens",
		Path:  "/moyens",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("title", "Titre", "Trois Piliers pour un"),
				text("title_highlight", "Titre (partie colorée)", "Impact Durable"),
				text("description", "Description", "Découvrez les moyens concrets par lesquels notre association œuvre pour l'autonomisation des communautés gabonaises."),
			}},
			{Key: "cooperative", Label: "Section Coopérative", Fields: []Field{
				text("title", "Titre", "Coopérative Agricole à Nkoltang"),
				rich("description", "Description", ""),
				image("image", "Image", ImageFarmerWoman),
			}},
			{Key: "restaurant", Label: "Section Restaurant", Fields: []Field{
				text("title", "Titre", "Restaurant \"Les Délices du Gabon\""),
				rich("description", "Description", ""),
				image("image", "Image", ImageRestaurant),
			}},
			{Key: "culture", Label: "Section Culture", Fields: []Field{
				text("title", "Titre", "Groupe Culturel"),
				rich("description", "Description", ""),
				image("image", "Image", ImageCulturalDance),
			}},
		},
	},
	Page{
		Key:   "cooperative",
		Label: "Coopérative",
		Path:  "/cooperative",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("title", "Titre", "Coopérative Agricole de Nkoltang"),
				text("subtitle", "Sous-titre", "Agriculture durable pour l'autonomisation des femmes gabonaises."),
				image("image", "Image de fond", ImageHeroAgriculture),
			}},
			{Key: "stats", Label: "Statistiques", Fields: []Field{
				text("stat1_value", "Stat 1 - Valeur", "10"),
				text("stat1_label", "Stat 1 - Label", "Hectares Cultivés"),
				text("stat2_value", "Stat 2 - Valeur", "200+"),
				text("stat2_label", "Stat 2 - Label", "Femmes Formées"),
				text("stat3_value", "Stat 3 - Valeur", "30 km"),
				text("stat3_label", "Stat 3 - Label", "De Libreville"),
				text("stat4_value", "Stat 4 - Valeur", "15+"),
				text("stat4_label", "Stat 4 - Label", "Cultures Différentes"),
			}},
			{Key: "about", Label: "Section À propos", Fields: []Field{
				text("title", "Titre", "Transformer des Vies par l'Agriculture"),
				rich("description", "Description", ""),
			}},
			{Key: "activities", Label: "Activités", Fields: []Field{
				text("title", "Titre de la section", "Nos Activités"),
				text("description", "Description", "De la formation à la production, nous couvrons toute la chaîne de valeur agricole."),
			}},
			{Key: "cta", Label: "Section CTA", Fields: []Field{
				text("title", "Titre", "Soutenez Notre Coopérative"),
				text("description", "Description", "Votre soutien permet de former plus de femmes, d'acquérir du matériel agricole et de développer nos activités pour un impact encore plus grand."),
			}},
		},
	},
	Page{
		Key:   "culture",
		Label: "Culture",
		Path:  "/culture",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("title", "Titre", "Groupe Culturel Gabonais"),
				text("subtitle", "Sous-titre", "Valorisation de la culture gabonaise à travers les arts traditionnels."),
				image("image", "Image de fond", ImageCulturalDance),
			}},
			{Key: "mission", Label: "Mission Culturelle", Fields: []Field{
				text("title", "Titre", "Notre Mission Culturelle"),
				rich("description", "Description", ""),
			}},
			{Key: "prestations", Label: "Prestations", Fields: []Field{
				text("title", "Titre", "Nos Prestations"),
				text("description", "Description", "Une gamme complète de services culturels pour tous vos événements."),
			}},
			{Key: "cta", Label: "Section CTA", Fields: []Field{
				text("title", "Titre", "Réservez Notre Groupe"),
				text("description", "Description", "Vous organisez un événement ? Notre groupe culturel apportera une touche d'authenticité africaine mémorable à votre célébration."),
			}},
		},
	},
	Page{
		Key:   "projets",
		Label: "Projets",
		Path:  "/projets",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("title", "Titre", "Activités et"),
				text("title_highlight", "Titre (partie colorée)", "Projets Récents"),
				text("description", "Description", "Suivez nos actualités et découvrez l'impact concret de nos actions sur le terrain au Gabon et en France."),
			}},
			{Key: "cta", Label: "Section CTA", Fields: []Field{
				text("text", "Texte", "Vous souhaitez contribuer à nos prochains projets ?"),
			}},
		},
	},
	Page{
		Key:   "boutique",
		Label: "Boutique",
		Path:  "/boutique",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("badge", "Badge", "Boutique Express"),
				text("title", "Titre", "Artisanat"),
				text("title_highlight", "Titre (partie colorée)", "Gabonais"),
				text("description", "Description", "Découvrez notre sélection de produits artisanaux authentiques et offrez des bons cadeaux pour le restaurant \"Les Délices du Gabon\"."),
			}},
			{Key: "gift_cards", Label: "Bons Cadeaux", Fields: []Field{
				text("title", "Titre", "Offrez une Expérience Culinaire"),
				text("description", "Description", "Nos bons cadeaux vous permettent d'offrir un moment de découverte gastronomique au restaurant \"Les Délices du Gabon\"."),
			}},
		},
	},
	Page{
		Key:   "galerie",
		Label: "Galerie",
		Path:  "/galerie",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("badge", "Badge", "Galerie Photos"),
				text("title", "Titre", "Nos"),
				text("title_highlight", "Titre (partie colorée)", "Moments"),
				text("title_suffix", "Titre (suite)", "en Images"),
				text("description", "Description", "Découvrez en images nos activités agricoles à Nkoltang, nos événements culturels et l'ambiance du restaurant \"Les Délices du Gabon\"."),
			}},
		},
	},
	Page{
		Key:   "contact",
		Label: "Contact",
		Path:  "/contact",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("title", "Titre", "Parlons de Votre"),
				text("title_highlight", "Titre (partie colorée)", "Engagement"),
				text("description", "Description", "Une question, une idée de partenariat ou envie de nous rejoindre ? Notre équipe est à votre écoute."),
			}},
			{Key: "info", Label: "Informations", Fields: []Field{
				text("address", "Adresse", "Verneuil-sur-Avre, Normandie, France"),
				text("phone", "Téléphone", "+33 6 81 65 78 70"),
				text("email", "Email", "assorefletdugabon@yahoo.com"),
			}},
		},
	},
	Page{
		Key:   "presidente",
		Label: "Présidente",
		Path:  "/presidente",
		Sections: []Section{
			{Key: "hero", Label: "Section Héro", Fields: []Field{
				text("badge", "Badge", "Message de la Direction"),
				text("title", "Titre", "Le Mot de la"),
				text("title_highlight", "Titre (partie colorée)", "Présidente"),
			}},
			{Key: "message", Label: "Message de la Présidente", Fields: []Field{
				rich("content", "Contenu du message", ""),
			}},
			{Key: "signature", Label: "Signature", Fields: []Field{
				text("closing", "Formule de conclusion", "Avec toute ma gratitude et mon engagement,"),
				text("name", "Nom", "Annie Pichon"),
				text("title", "Titre / Fonction", "Présidente de Reflet du Gabon"),
			}},
			{Key: "cta", Label: "Appel à l'action", Fields: []Field{
				text("text", "Texte", "Vous souhaitez nous rejoindre dans cette aventure ?"),
			}},
		},
	},
)
